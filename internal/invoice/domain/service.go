package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidOwner   = errors.New("invalid_owner")
	ErrInvalidID      = errors.New("invalid_invoice_id")
	ErrInvalidProject = errors.New("invalid_project")
	ErrInvalidItems   = errors.New("invalid_line_items")
	ErrInvalidTaxRate = errors.New("invalid_tax_rate")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrStatusChange   = errors.New("status_transition_not_allowed")
	ErrInvalidDate    = errors.New("invalid_date")
	ErrNotFound       = errors.New("invoice_not_found")
)

// LineItemInput carries raw line item values from the API layer. Quantity
// and rate arrive as strings so malformed numbers can be rejected instead
// of silently coerced.
type LineItemInput struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
}

type CreateInvoiceRequest struct {
	ProjectID   string          `json:"project_id"`
	Items       []LineItemInput `json:"items"`
	TaxRate     *string         `json:"tax_rate,omitempty"`
	Notes       string          `json:"notes"`
	InvoiceDate *time.Time      `json:"invoice_date,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
}

// UpdateInvoiceRequest covers the only fields an update may touch. Anything
// else in the request body is rejected before it reaches the service.
type UpdateInvoiceRequest struct {
	ID          string           `json:"-"`
	Status      *InvoiceStatus   `json:"status,omitempty"`
	Items       *[]LineItemInput `json:"items,omitempty"`
	TaxRate     *string          `json:"tax_rate,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	InvoiceDate *time.Time       `json:"invoice_date,omitempty"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
}

// ListInvoiceRequest filters the owner's invoices. DateFrom and DateTo are
// inclusive YYYY-MM-DD bounds on the invoice date.
type ListInvoiceRequest struct {
	Status    InvoiceStatus `form:"status"`
	ClientID  string        `form:"client_id"`
	ProjectID string        `form:"project_id"`
	DateFrom  string        `form:"date_from"`
	DateTo    string        `form:"date_to"`
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) ([]Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Update(ctx context.Context, req UpdateInvoiceRequest) (Invoice, error)
	Delete(ctx context.Context, id string) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}
