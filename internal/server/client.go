package server

import (
	"net/http"
	"strconv"

	clientdomain "github.com/facturio/facturio/internal/client/domain"
	"github.com/gin-gonic/gin"
)

type createClientRequest struct {
	Name    string               `json:"name"`
	Email   string               `json:"email"`
	Company string               `json:"company"`
	Phone   string               `json:"phone"`
	RC      string               `json:"rc"`
	ICE     string               `json:"ice"`
	Address clientdomain.Address `json:"address"`
}

type updateClientRequest struct {
	Name    *string               `json:"name"`
	Email   *string               `json:"email"`
	Company *string               `json:"company"`
	Phone   *string               `json:"phone"`
	RC      *string               `json:"rc"`
	ICE     *string               `json:"ice"`
	Address *clientdomain.Address `json:"address"`
}

func (s *Server) ListClients(c *gin.Context) {
	var req clientdomain.ListClientRequest
	req.PageToken = c.Query("page_token")
	req.Name = c.Query("name")
	req.Email = c.Query("email")
	if size := c.Query("page_size"); size != "" {
		parsed, err := strconv.Atoi(size)
		if err != nil || parsed < 0 {
			AbortWithError(c, invalidRequestError())
			return
		}
		req.PageSize = parsed
	}

	resp, err := s.clientSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	client, err := s.clientSvc.Create(c.Request.Context(), clientdomain.CreateClientRequest{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		RC:      req.RC,
		ICE:     req.ICE,
		Address: req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (s *Server) GetClientByID(c *gin.Context) {
	client, err := s.clientSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (s *Server) UpdateClient(c *gin.Context) {
	var req updateClientRequest
	if err := bindAllowList(c, &req, "name", "email", "company", "address", "phone", "rc", "ice"); err != nil {
		AbortWithError(c, err)
		return
	}

	client, err := s.clientSvc.Update(c.Request.Context(), clientdomain.UpdateClientRequest{
		ID:      c.Param("id"),
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		RC:      req.RC,
		ICE:     req.ICE,
		Address: req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (s *Server) DeleteClient(c *gin.Context) {
	if err := s.clientSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
