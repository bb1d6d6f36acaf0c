package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/invoice/domain"
	"gorm.io/gorm"
)

type repositoryImpl struct{}

func Provide() domain.Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Take(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repositoryImpl) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListInvoiceFilter) ([]*domain.Invoice, error) {
	query := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("owner_id = ?", ownerID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ClientID != 0 {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.ProjectID != 0 {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.DateFrom != nil {
		query = query.Where("invoice_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("invoice_date < ?", *filter.DateTo)
	}

	var invoices []*domain.Invoice
	if err := query.Order("created_at DESC, id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repositoryImpl) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Save(invoice).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&domain.Invoice{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) MarkOverdue(ctx context.Context, db *gorm.DB, now time.Time) ([]snowflake.ID, int64, error) {
	var owners []snowflake.ID
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Distinct("owner_id").
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", domain.InvoiceStatusSent, now).
		Pluck("owner_id", &owners).Error
	if err != nil {
		return nil, 0, err
	}
	if len(owners) == 0 {
		return nil, 0, nil
	}

	result := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", domain.InvoiceStatusSent, now).
		Updates(map[string]any{"status": domain.InvoiceStatusOverdue, "updated_at": now})
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return owners, result.RowsAffected, nil
}

type counterRepositoryImpl struct{}

func ProvideCounter() domain.CounterRepository {
	return &counterRepositoryImpl{}
}

const (
	// postgres and sqlite return the bumped sequence in one statement.
	counterUpsertReturning = `
		INSERT INTO invoice_counters (bucket, seq) VALUES (?, 1)
		ON CONFLICT (bucket) DO UPDATE SET seq = invoice_counters.seq + 1
		RETURNING seq`

	// mysql has no RETURNING. LAST_INSERT_ID(expr) records the sequence on
	// both the initial insert and the bump, a follow-up SELECT reads it back
	// on the same connection.
	counterUpsertMySQL = `
		INSERT INTO invoice_counters (bucket, seq) VALUES (?, LAST_INSERT_ID(1))
		ON DUPLICATE KEY UPDATE seq = LAST_INSERT_ID(seq + 1)`
)

// counterUpsert picks the atomic increment statement for a dialect.
func counterUpsert(dialect string) string {
	if dialect == "mysql" {
		return counterUpsertMySQL
	}
	return counterUpsertReturning
}

// IncrementAndGet bumps the bucket's counter and returns the new sequence
// atomically, so concurrent inserts into the same bucket never see the
// same value.
func (r *counterRepositoryImpl) IncrementAndGet(ctx context.Context, db *gorm.DB, bucket string) (int64, error) {
	var seq int64
	stmt := counterUpsert(db.Dialector.Name())
	if stmt == counterUpsertMySQL {
		if err := db.WithContext(ctx).Exec(stmt, bucket).Error; err != nil {
			return 0, err
		}
		if err := db.WithContext(ctx).Raw(`SELECT LAST_INSERT_ID()`).Scan(&seq).Error; err != nil {
			return 0, err
		}
		return seq, nil
	}
	if err := db.WithContext(ctx).Raw(stmt, bucket).Scan(&seq).Error; err != nil {
		return 0, err
	}
	return seq, nil
}
