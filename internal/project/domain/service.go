package domain

import (
	"context"
	"errors"
	"time"
)

type CreateProjectRequest struct {
	Title       string
	ClientID    string
	Description string
	Category    string
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateProjectRequest is a partial update. Nil fields are left untouched.
// Category is deliberately absent: it seeds invoice numbers and never
// changes after creation.
type UpdateProjectRequest struct {
	ID          string
	Title       *string
	ClientID    *string
	Description *string
	Status      *ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
}

type ListProjectRequest struct {
	Status   ProjectStatus
	ClientID string
}

type Service interface {
	Create(context.Context, CreateProjectRequest) (Project, error)
	List(context.Context, ListProjectRequest) ([]Project, error)
	GetByID(ctx context.Context, id string) (Project, error)
	Update(context.Context, UpdateProjectRequest) (Project, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidOwner    = errors.New("invalid_owner")
	ErrInvalidTitle    = errors.New("invalid_title")
	ErrInvalidClient   = errors.New("invalid_client")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
