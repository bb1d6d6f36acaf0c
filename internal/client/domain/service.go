package domain

import (
	"context"
	"errors"

	"github.com/facturio/facturio/pkg/db/pagination"
)

type CreateClientRequest struct {
	Name    string
	Email   string
	Company string
	Phone   string
	RC      string
	ICE     string
	Address Address
}

// UpdateClientRequest is a partial update. Nil fields are left untouched.
type UpdateClientRequest struct {
	ID      string
	Name    *string
	Email   *string
	Company *string
	Phone   *string
	RC      *string
	ICE     *string
	Address *Address
}

type ListClientRequest struct {
	PageToken string
	PageSize  int
	Name      string
	Email     string
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type Service interface {
	Create(context.Context, CreateClientRequest) (Client, error)
	List(context.Context, ListClientRequest) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(context.Context, UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidOwner = errors.New("invalid_owner")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
