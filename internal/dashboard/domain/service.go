package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidOwner = errors.New("invalid_owner")

type MonthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// Activity is one row of the recent activity feed, built from the newest
// projects and invoices.
type Activity struct {
	Type        string    `json:"type"`
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

type Stats struct {
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	ActiveProjects     int64           `json:"active_projects"`
	PendingInvoices    int64           `json:"pending_invoices"`
	CompletedProjects  int64           `json:"completed_projects"`
	RevenueByMonth     []MonthRevenue  `json:"revenue_by_month"`
	ProjectsByCategory []CategoryCount `json:"projects_by_category"`
	RecentActivity     []Activity      `json:"recent_activity"`
}

type Service interface {
	Stats(ctx context.Context) (Stats, error)
}
