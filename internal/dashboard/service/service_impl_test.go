package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/dashboard/domain"
	invoicedomain "github.com/facturio/facturio/internal/invoice/domain"
	projectdomain "github.com/facturio/facturio/internal/project/domain"
	"github.com/facturio/facturio/pkg/db"
	"github.com/facturio/facturio/pkg/ownerctx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&projectdomain.Project{}, &invoicedomain.Invoice{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{DB: conn, Log: zap.NewNop()}), conn, node
}

func seedInvoice(t *testing.T, conn *gorm.DB, node *snowflake.Node, ownerID snowflake.ID, status invoicedomain.InvoiceStatus, total string, date time.Time) {
	t.Helper()

	amount, err := decimal.NewFromString(total)
	require.NoError(t, err)

	require.NoError(t, conn.Create(&invoicedomain.Invoice{
		ID:          node.Generate(),
		OwnerID:     ownerID,
		Number:      node.Generate().String(),
		Status:      status,
		Total:       amount,
		InvoiceDate: date,
		CreatedAt:   date,
		UpdatedAt:   date,
	}).Error)
}

func seedProject(t *testing.T, conn *gorm.DB, node *snowflake.Node, ownerID snowflake.ID, status projectdomain.ProjectStatus, category string, updated time.Time) {
	t.Helper()

	require.NoError(t, conn.Create(&projectdomain.Project{
		ID:        node.Generate(),
		OwnerID:   ownerID,
		ClientID:  node.Generate(),
		Title:     "Project " + category,
		Category:  category,
		Status:    status,
		CreatedAt: updated,
		UpdatedAt: updated,
	}).Error)
}

func TestStatsRevenueExcludesNonPaid(t *testing.T) {
	svc, conn, node := newTestService(t)
	owner := node.Generate()
	ctx := ownerctx.WithOwnerID(context.Background(), owner)

	now := time.Now().UTC()
	seedInvoice(t, conn, node, owner, invoicedomain.InvoiceStatusPaid, "1000", now)
	seedInvoice(t, conn, node, owner, invoicedomain.InvoiceStatusPaid, "500", now.AddDate(0, -1, 0))
	seedInvoice(t, conn, node, owner, invoicedomain.InvoiceStatusSent, "9999", now)
	seedInvoice(t, conn, node, owner, invoicedomain.InvoiceStatusDraft, "123", now)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, "1500", stats.TotalRevenue.String())
	assert.EqualValues(t, 3, stats.PendingInvoices)

	require.Len(t, stats.RevenueByMonth, 12)
	last := stats.RevenueByMonth[11]
	assert.Equal(t, "1000", last.Revenue.String())
	// Months are chronological, the previous month sits right before.
	assert.Equal(t, "500", stats.RevenueByMonth[10].Revenue.String())
}

func TestStatsScopedToOwner(t *testing.T) {
	svc, conn, node := newTestService(t)
	owner := node.Generate()
	other := node.Generate()

	now := time.Now().UTC()
	seedInvoice(t, conn, node, other, invoicedomain.InvoiceStatusPaid, "777", now)
	seedProject(t, conn, node, other, projectdomain.ProjectStatusInProgress, "development", now)

	stats, err := svc.Stats(ownerctx.WithOwnerID(context.Background(), owner))
	require.NoError(t, err)

	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Zero(t, stats.ActiveProjects)
	assert.Empty(t, stats.ProjectsByCategory)
	assert.Empty(t, stats.RecentActivity)
}

func TestStatsProjectRollups(t *testing.T) {
	svc, conn, node := newTestService(t)
	owner := node.Generate()
	ctx := ownerctx.WithOwnerID(context.Background(), owner)

	now := time.Now().UTC()
	seedProject(t, conn, node, owner, projectdomain.ProjectStatusInProgress, "development", now)
	seedProject(t, conn, node, owner, projectdomain.ProjectStatusInProgress, "development", now)
	seedProject(t, conn, node, owner, projectdomain.ProjectStatusCompleted, "consulting", now)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.ActiveProjects)
	assert.EqualValues(t, 1, stats.CompletedProjects)
	require.Len(t, stats.ProjectsByCategory, 2)
	assert.Equal(t, domain.CategoryCount{Category: "consulting", Count: 1}, stats.ProjectsByCategory[0])
	assert.Equal(t, domain.CategoryCount{Category: "development", Count: 2}, stats.ProjectsByCategory[1])
}

func TestStatsRecentActivityMergesAndTruncates(t *testing.T) {
	svc, conn, node := newTestService(t)
	owner := node.Generate()
	ctx := ownerctx.WithOwnerID(context.Background(), owner)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		seedProject(t, conn, node, owner, projectdomain.ProjectStatusPending, "development", base.Add(time.Duration(i)*time.Minute))
	}
	for i := 0; i < 4; i++ {
		seedInvoice(t, conn, node, owner, invoicedomain.InvoiceStatusDraft, "100", base.Add(time.Duration(10+i)*time.Minute))
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	require.Len(t, stats.RecentActivity, 5)
	// The four invoices are newest, then the newest project.
	for i := 0; i < 4; i++ {
		assert.Equal(t, "invoice", stats.RecentActivity[i].Type)
	}
	assert.Equal(t, "project", stats.RecentActivity[4].Type)

	for i := 1; i < len(stats.RecentActivity); i++ {
		assert.False(t, stats.RecentActivity[i].Timestamp.After(stats.RecentActivity[i-1].Timestamp))
	}
}
