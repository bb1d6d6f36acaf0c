package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/dashboard/domain"
	invoicedomain "github.com/facturio/facturio/internal/invoice/domain"
	projectdomain "github.com/facturio/facturio/internal/project/domain"
	"github.com/facturio/facturio/pkg/ownerctx"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const activityLimit = 5

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("dashboard.service"),
	}
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Stats{}, domain.ErrInvalidOwner
	}

	stats := domain.Stats{TotalRevenue: decimal.Zero}

	err := s.db.WithContext(ctx).
		Model(&projectdomain.Project{}).
		Where("owner_id = ? AND status = ?", ownerID, projectdomain.ProjectStatusInProgress).
		Count(&stats.ActiveProjects).Error
	if err != nil {
		return domain.Stats{}, err
	}

	err = s.db.WithContext(ctx).
		Model(&projectdomain.Project{}).
		Where("owner_id = ? AND status = ?", ownerID, projectdomain.ProjectStatusCompleted).
		Count(&stats.CompletedProjects).Error
	if err != nil {
		return domain.Stats{}, err
	}

	err = s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("owner_id = ? AND status IN ?", ownerID, []invoicedomain.InvoiceStatus{
			invoicedomain.InvoiceStatusDraft,
			invoicedomain.InvoiceStatusSent,
			invoicedomain.InvoiceStatusOverdue,
		}).
		Count(&stats.PendingInvoices).Error
	if err != nil {
		return domain.Stats{}, err
	}

	if err := s.fillRevenue(ctx, ownerID, &stats); err != nil {
		return domain.Stats{}, err
	}
	if err := s.fillCategories(ctx, ownerID, &stats); err != nil {
		return domain.Stats{}, err
	}
	if err := s.fillActivity(ctx, ownerID, &stats); err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

// fillRevenue sums paid invoices into the total and buckets the trailing
// twelve calendar months in memory, which keeps the query portable across
// dialects.
func (s *Service) fillRevenue(ctx context.Context, ownerID snowflake.ID, stats *domain.Stats) error {
	type paidRow struct {
		InvoiceDate time.Time
		Total       decimal.Decimal
	}
	var rows []paidRow
	err := s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Select("invoice_date", "total").
		Where("owner_id = ? AND status = ?", ownerID, invoicedomain.InvoiceStatusPaid).
		Find(&rows).Error
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	byMonth := make(map[string]decimal.Decimal, 12)
	months := make([]string, 0, 12)
	for i := 11; i >= 0; i-- {
		month := currentMonth.AddDate(0, -i, 0)
		label := monthLabel(month)
		months = append(months, label)
		byMonth[label] = decimal.Zero
	}

	for _, row := range rows {
		stats.TotalRevenue = stats.TotalRevenue.Add(row.Total)
		label := monthLabel(row.InvoiceDate)
		if bucket, ok := byMonth[label]; ok {
			byMonth[label] = bucket.Add(row.Total)
		}
	}

	stats.RevenueByMonth = make([]domain.MonthRevenue, 0, 12)
	for _, label := range months {
		stats.RevenueByMonth = append(stats.RevenueByMonth, domain.MonthRevenue{
			Month:   label,
			Revenue: byMonth[label],
		})
	}
	return nil
}

func (s *Service) fillCategories(ctx context.Context, ownerID snowflake.ID, stats *domain.Stats) error {
	type categoryRow struct {
		Category string
		Count    int64
	}
	var rows []categoryRow
	err := s.db.WithContext(ctx).
		Model(&projectdomain.Project{}).
		Select("category", "COUNT(*) AS count").
		Where("owner_id = ?", ownerID).
		Group("category").
		Order("category").
		Find(&rows).Error
	if err != nil {
		return err
	}

	stats.ProjectsByCategory = make([]domain.CategoryCount, 0, len(rows))
	for _, row := range rows {
		stats.ProjectsByCategory = append(stats.ProjectsByCategory, domain.CategoryCount{
			Category: row.Category,
			Count:    row.Count,
		})
	}
	return nil
}

// fillActivity merges the five newest projects and invoices by update time
// and keeps the five newest overall.
func (s *Service) fillActivity(ctx context.Context, ownerID snowflake.ID, stats *domain.Stats) error {
	var projects []projectdomain.Project
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Limit(activityLimit).
		Find(&projects).Error
	if err != nil {
		return err
	}

	var invoices []invoicedomain.Invoice
	err = s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Limit(activityLimit).
		Find(&invoices).Error
	if err != nil {
		return err
	}

	activity := make([]domain.Activity, 0, len(projects)+len(invoices))
	for _, p := range projects {
		activity = append(activity, domain.Activity{
			Type:        "project",
			ID:          p.ID.String(),
			Description: p.Title,
			Timestamp:   p.UpdatedAt,
		})
	}
	for _, inv := range invoices {
		activity = append(activity, domain.Activity{
			Type:        "invoice",
			ID:          inv.ID.String(),
			Description: fmt.Sprintf("Invoice %s", inv.Number),
			Timestamp:   inv.UpdatedAt,
		})
	}

	sort.Slice(activity, func(i, j int) bool {
		return activity[i].Timestamp.After(activity[j].Timestamp)
	})
	if len(activity) > activityLimit {
		activity = activity[:activityLimit]
	}
	stats.RecentActivity = activity
	return nil
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}
