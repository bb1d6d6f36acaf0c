package server

import (
	"strings"

	authdomain "github.com/facturio/facturio/internal/auth/domain"
	"github.com/facturio/facturio/pkg/ownerctx"
	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and injects the owner ID and role
// into the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authSvc.Verify(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := ownerctx.WithOwnerID(c.Request.Context(), user.ID)
		ctx = ownerctx.WithRole(ctx, user.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AdminRequired gates a route on the admin role. Must run after AuthRequired.
func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := ownerctx.RoleFromContext(c.Request.Context())
		if !ok || role != authdomain.RoleAdmin {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}
