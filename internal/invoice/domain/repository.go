package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListInvoiceFilter is the resolved list filter. DateTo is an exclusive
// upper bound, already advanced past the requested day by the service.
type ListInvoiceFilter struct {
	Status    InvoiceStatus
	ClientID  snowflake.ID
	ProjectID snowflake.ID
	DateFrom  *time.Time
	DateTo    *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter ListInvoiceFilter) ([]*Invoice, error)
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	Delete(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (bool, error)
	MarkOverdue(ctx context.Context, db *gorm.DB, now time.Time) (owners []snowflake.ID, affected int64, err error)
}

// CounterRepository hands out sequence numbers for invoice numbering
// buckets. IncrementAndGet must be called inside the transaction that
// inserts the invoice so a failed insert does not burn a number.
type CounterRepository interface {
	IncrementAndGet(ctx context.Context, db *gorm.DB, bucket string) (int64, error)
}
