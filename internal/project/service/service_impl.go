package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/facturio/facturio/internal/client/domain"
	"github.com/facturio/facturio/internal/project/domain"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	"github.com/facturio/facturio/pkg/ownerctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Clients  clientdomain.Service
	Settings settingsdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	clients  clientdomain.Service
	settings settingsdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("project.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		clients:  p.Clients,
		settings: p.Settings,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProjectRequest) (domain.Project, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Project{}, domain.ErrInvalidOwner
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Project{}, domain.ErrInvalidTitle
	}

	client, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		if err == clientdomain.ErrNotFound || err == clientdomain.ErrInvalidID {
			return domain.Project{}, domain.ErrInvalidClient
		}
		return domain.Project{}, err
	}

	category, err := s.normalizeCategory(ctx, ownerID, req.Category)
	if err != nil {
		return domain.Project{}, err
	}

	status := req.Status
	if status == "" {
		status = domain.ProjectStatusPending
	}
	if !domain.ValidStatus(status) {
		return domain.Project{}, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:          s.genID.Generate(),
		OwnerID:     ownerID,
		ClientID:    client.ID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Status:      status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProjectRequest) ([]domain.Project, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return nil, domain.ErrInvalidOwner
	}

	filter := domain.ListProjectFilter{}
	if req.Status != "" {
		if !domain.ValidStatus(req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		filter.Status = req.Status
	}
	if strings.TrimSpace(req.ClientID) != "" {
		clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
		if err != nil {
			return nil, domain.ErrInvalidClient
		}
		filter.ClientID = clientID
	}

	items, err := s.repo.List(ctx, s.db, ownerID, filter)
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(items))
	for _, item := range items {
		projects = append(projects, *item)
	}
	return projects, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Project, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Project{}, domain.ErrInvalidOwner
	}

	parsed, err := parseID(id)
	if err != nil {
		return domain.Project{}, err
	}

	project, err := s.repo.FindByID(ctx, s.db, ownerID, parsed)
	if err != nil {
		return domain.Project{}, err
	}
	if project == nil {
		return domain.Project{}, domain.ErrNotFound
	}
	return *project, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProjectRequest) (domain.Project, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Project{}, domain.ErrInvalidOwner
	}

	parsed, err := parseID(req.ID)
	if err != nil {
		return domain.Project{}, err
	}

	project, err := s.repo.FindByID(ctx, s.db, ownerID, parsed)
	if err != nil {
		return domain.Project{}, err
	}
	if project == nil {
		return domain.Project{}, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Project{}, domain.ErrInvalidTitle
		}
		project.Title = title
	}
	if req.ClientID != nil {
		client, err := s.clients.GetByID(ctx, *req.ClientID)
		if err != nil {
			if err == clientdomain.ErrNotFound || err == clientdomain.ErrInvalidID {
				return domain.Project{}, domain.ErrInvalidClient
			}
			return domain.Project{}, err
		}
		project.ClientID = client.ID
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return domain.Project{}, domain.ErrInvalidStatus
		}
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, project); err != nil {
		return domain.Project{}, err
	}
	return *project, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ErrInvalidOwner
	}

	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	removed, err := s.repo.Delete(ctx, s.db, ownerID, parsed)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}

// normalizeCategory lowercases the input and checks it against the owner's
// configured categories by name or code.
func (s *Service) normalizeCategory(ctx context.Context, ownerID snowflake.ID, raw string) (string, error) {
	category := strings.ToLower(strings.TrimSpace(raw))
	if category == "" {
		return "", domain.ErrInvalidCategory
	}

	billing, err := s.settings.ResolveBilling(ctx, ownerID)
	if err != nil {
		return "", err
	}

	for _, candidate := range billing.Categories {
		if category == strings.ToLower(candidate.Name) || category == strings.ToLower(candidate.Code) {
			return category, nil
		}
	}
	return "", domain.ErrInvalidCategory
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
