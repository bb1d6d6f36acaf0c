package server

import (
	"net/http"

	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetSettings(c *gin.Context) {
	settings, err := s.settingsSvc.GetOrCreate(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settingsView(settings))
}

func (s *Server) UpdateSettings(c *gin.Context) {
	var req settingsdomain.UpdateSettingsRequest
	if err := bindAllowList(c, &req, "default_tax_rate", "currency", "categories", "allow_registration", "business_info"); err != nil {
		AbortWithError(c, err)
		return
	}

	settings, err := s.settingsSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settingsView(settings))
}

// settingsView exposes the currency pair as one object instead of the two
// stored columns.
func settingsView(settings settingsdomain.Settings) gin.H {
	return gin.H{
		"id":                 settings.ID.String(),
		"default_tax_rate":   settings.DefaultTaxRate,
		"currency":           settings.Currency(),
		"categories":         settings.Categories.Data(),
		"allow_registration": settings.AllowRegistration,
		"business_info":      settings.BusinessInfo.Data(),
		"created_at":         settings.CreatedAt,
		"updated_at":         settings.UpdatedAt,
	}
}
