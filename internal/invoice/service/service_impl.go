package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/cache"
	"github.com/facturio/facturio/internal/invoice/calc"
	"github.com/facturio/facturio/internal/invoice/domain"
	"github.com/facturio/facturio/internal/invoice/number"
	projectdomain "github.com/facturio/facturio/internal/project/domain"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	"github.com/facturio/facturio/pkg/ownerctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Counters domain.CounterRepository
	Projects projectdomain.Service
	Settings settingsdomain.Service
	Cache    *cache.InvoiceCache
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	counters domain.CounterRepository
	projects projectdomain.Service
	settings settingsdomain.Service
	cache    *cache.InvoiceCache
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("invoice.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		counters: p.Counters,
		projects: p.Projects,
		settings: p.Settings,
		cache:    p.Cache,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOwner
	}

	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		if err == projectdomain.ErrNotFound || err == projectdomain.ErrInvalidID {
			return domain.Invoice{}, domain.ErrInvalidProject
		}
		return domain.Invoice{}, err
	}

	items, err := calc.BuildItems(req.Items)
	if err != nil {
		return domain.Invoice{}, err
	}

	billing, err := s.settings.ResolveBilling(ctx, ownerID)
	if err != nil {
		return domain.Invoice{}, err
	}
	taxRate := billing.TaxRate
	if req.TaxRate != nil {
		taxRate, err = calc.ParseTaxRate(*req.TaxRate)
		if err != nil {
			return domain.Invoice{}, err
		}
	}

	totals := calc.Compute(items, taxRate)

	now := time.Now().UTC()
	invoiceDate := now
	if req.InvoiceDate != nil {
		invoiceDate = req.InvoiceDate.UTC()
	}
	// An omitted due date falls back to the invoice date, so every invoice
	// is reachable by the overdue sweep.
	dueDate := req.DueDate
	if dueDate == nil {
		d := invoiceDate
		dueDate = &d
	}

	invoice := domain.Invoice{
		ID:        s.genID.Generate(),
		OwnerID:   ownerID,
		ClientID:  project.ClientID,
		ProjectID: project.ID,
		Status:    domain.InvoiceStatusDraft,
		Currency: domain.Currency{
			Code:   billing.Currency.Code,
			Symbol: billing.Currency.Symbol,
		},
		Items:       datatypes.NewJSONType(totals.Items),
		Subtotal:    totals.Subtotal,
		TaxRate:     taxRate,
		TaxAmount:   totals.TaxAmount,
		Total:       totals.Total,
		Notes:       strings.TrimSpace(req.Notes),
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The counter bump and the insert share one transaction so a failed
	// insert never burns a sequence number.
	bucket := number.Bucket(invoiceDate, project.Category)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.counters.IncrementAndGet(ctx, tx, bucket)
		if err != nil {
			return err
		}
		invoice.Number = number.Format(bucket, seq)
		return s.repo.Insert(ctx, tx, &invoice)
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.cache.Invalidate(ctx, ownerID)
	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("number", invoice.Number),
	)
	return invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) ([]domain.Invoice, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return nil, domain.ErrInvalidOwner
	}

	filter := domain.ListInvoiceFilter{}
	if req.Status != "" {
		if !domain.ValidStatus(req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		filter.Status = req.Status
	}
	if strings.TrimSpace(req.ClientID) != "" {
		id, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		filter.ClientID = id
	}
	if strings.TrimSpace(req.ProjectID) != "" {
		id, err := snowflake.ParseString(strings.TrimSpace(req.ProjectID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		filter.ProjectID = id
	}
	if strings.TrimSpace(req.DateFrom) != "" {
		from, err := time.Parse("2006-01-02", strings.TrimSpace(req.DateFrom))
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		filter.DateFrom = &from
	}
	if strings.TrimSpace(req.DateTo) != "" {
		to, err := time.Parse("2006-01-02", strings.TrimSpace(req.DateTo))
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		// date_to is inclusive, the filter carries the next midnight.
		end := to.AddDate(0, 0, 1)
		filter.DateTo = &end
	}

	// Only the unfiltered list is cached, filtered reads go straight to
	// the database.
	unfiltered := filter == domain.ListInvoiceFilter{}
	if unfiltered {
		if cached, ok := s.cache.GetList(ctx, ownerID); ok {
			return cached, nil
		}
	}

	items, err := s.repo.List(ctx, s.db, ownerID, filter)
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		invoices = append(invoices, *item)
	}
	if unfiltered {
		s.cache.SetList(ctx, ownerID, invoices)
	}
	return invoices, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOwner
	}

	parsed, err := parseID(id)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, ownerID, parsed)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOwner
	}

	parsed, err := parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, ownerID, parsed)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return domain.Invoice{}, domain.ErrInvalidStatus
		}
		if !domain.CanTransition(invoice.Status, *req.Status) {
			return domain.Invoice{}, domain.ErrStatusChange
		}
		invoice.Status = *req.Status
	}

	recompute := false
	items := invoice.Items.Data()
	if req.Items != nil {
		items, err = calc.BuildItems(*req.Items)
		if err != nil {
			return domain.Invoice{}, err
		}
		recompute = true
	}
	taxRate := invoice.TaxRate
	if req.TaxRate != nil {
		taxRate, err = calc.ParseTaxRate(*req.TaxRate)
		if err != nil {
			return domain.Invoice{}, err
		}
		recompute = true
	}
	if recompute {
		totals := calc.Compute(items, taxRate)
		invoice.Items = datatypes.NewJSONType(totals.Items)
		invoice.Subtotal = totals.Subtotal
		invoice.TaxRate = taxRate
		invoice.TaxAmount = totals.TaxAmount
		invoice.Total = totals.Total
	}

	if req.Notes != nil {
		invoice.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.InvoiceDate != nil {
		// The number keeps its original bucket, only the displayed date moves.
		invoice.InvoiceDate = req.InvoiceDate.UTC()
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	invoice.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.cache.Invalidate(ctx, ownerID)
	return *invoice, nil
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

	s.cache.Invalidate(ctx, ownerID)
	return nil
}

// MarkOverdue flips every sent invoice with a past due date to overdue and
// drops the cached lists of the owners it touched.
func (s *Service) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	owners, affected, err := s.repo.MarkOverdue(ctx, s.db, now)
	if err != nil {
		return 0, err
	}
	for _, owner := range owners {
		s.cache.Invalidate(ctx, owner)
	}
	if affected > 0 {
		s.log.Info("invoices marked overdue", zap.Int64("count", affected))
	}
	return affected, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
