package server

import (
	"net/http"
	"time"

	projectdomain "github.com/facturio/facturio/internal/project/domain"
	"github.com/gin-gonic/gin"
)

type createProjectRequest struct {
	Title       string                      `json:"title"`
	ClientID    string                      `json:"client_id"`
	Description string                      `json:"description"`
	Category    string                      `json:"category"`
	Status      projectdomain.ProjectStatus `json:"status"`
	StartDate   *time.Time                  `json:"start_date"`
	EndDate     *time.Time                  `json:"end_date"`
}

type updateProjectRequest struct {
	Title       *string                      `json:"title"`
	ClientID    *string                      `json:"client_id"`
	Description *string                      `json:"description"`
	Status      *projectdomain.ProjectStatus `json:"status"`
	StartDate   *time.Time                   `json:"start_date"`
	EndDate     *time.Time                   `json:"end_date"`
}

func (s *Server) ListProjects(c *gin.Context) {
	projects, err := s.projectSvc.List(c.Request.Context(), projectdomain.ListProjectRequest{
		Status:   projectdomain.ProjectStatus(c.Query("status")),
		ClientID: c.Query("client_id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	project, err := s.projectSvc.Create(c.Request.Context(), projectdomain.CreateProjectRequest{
		Title:       req.Title,
		ClientID:    req.ClientID,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (s *Server) GetProjectByID(c *gin.Context) {
	project, err := s.projectSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject accepts everything except category, which is pinned at
// creation because issued invoice numbers embed it.
func (s *Server) UpdateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := bindAllowList(c, &req, "title", "client_id", "description", "status", "start_date", "end_date"); err != nil {
		AbortWithError(c, err)
		return
	}

	project, err := s.projectSvc.Update(c.Request.Context(), projectdomain.UpdateProjectRequest{
		ID:          c.Param("id"),
		Title:       req.Title,
		ClientID:    req.ClientID,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (s *Server) DeleteProject(c *gin.Context) {
	if err := s.projectSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
