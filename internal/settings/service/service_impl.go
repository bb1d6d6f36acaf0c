package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/config"
	"github.com/facturio/facturio/internal/settings/domain"
	"github.com/facturio/facturio/pkg/ownerctx"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var taxRateMax = decimal.NewFromInt(100)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Cfg   config.Config
	Repo  domain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	defaults config.BusinessDefaults
	repo     domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("settings.service"),
		genID:    p.GenID,
		defaults: p.Cfg.Defaults,
		repo:     p.Repo,
	}
}

func (s *Service) GetOrCreate(ctx context.Context) (domain.Settings, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Settings{}, domain.ErrInvalidOwner
	}
	return s.getOrCreate(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSettingsRequest) (domain.Settings, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Settings{}, domain.ErrInvalidOwner
	}

	settings, err := s.getOrCreate(ctx, ownerID)
	if err != nil {
		return domain.Settings{}, err
	}

	if req.DefaultTaxRate != nil {
		rate := *req.DefaultTaxRate
		if rate.IsNegative() || rate.GreaterThan(taxRateMax) {
			return domain.Settings{}, domain.ErrInvalidTaxRate
		}
		settings.DefaultTaxRate = rate
	}
	if req.Currency != nil {
		if req.Currency.Code != nil {
			code := strings.ToUpper(strings.TrimSpace(*req.Currency.Code))
			if code == "" {
				return domain.Settings{}, domain.ErrInvalidCategory
			}
			settings.CurrencyCode = code
		}
		if req.Currency.Symbol != nil && strings.TrimSpace(*req.Currency.Symbol) != "" {
			settings.CurrencySymbol = strings.TrimSpace(*req.Currency.Symbol)
		}
	}
	if req.Categories != nil {
		categories := make([]domain.Category, 0, len(*req.Categories))
		for _, category := range *req.Categories {
			name := strings.TrimSpace(category.Name)
			code := strings.ToUpper(strings.TrimSpace(category.Code))
			if name == "" || code == "" {
				return domain.Settings{}, domain.ErrInvalidCategory
			}
			categories = append(categories, domain.Category{Name: name, Code: code})
		}
		if len(categories) == 0 {
			return domain.Settings{}, domain.ErrInvalidCategory
		}
		settings.Categories = datatypes.NewJSONType(categories)
	}
	if req.AllowRegistration != nil {
		settings.AllowRegistration = *req.AllowRegistration
		// Registration is gated instance-wide, keep the shared record in sync.
		if err := s.setInstanceRegistration(ctx, *req.AllowRegistration); err != nil {
			return domain.Settings{}, err
		}
	}
	if req.BusinessInfo != nil {
		settings.BusinessInfo = datatypes.NewJSONType(mergeBusinessInfo(settings.BusinessInfo.Data(), *req.BusinessInfo))
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, &settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (s *Service) ResolveBilling(ctx context.Context, ownerID snowflake.ID) (domain.Billing, error) {
	if ownerID == 0 {
		return domain.Billing{}, domain.ErrInvalidOwner
	}

	settings, err := s.getOrCreate(ctx, ownerID)
	if err != nil {
		return domain.Billing{}, err
	}

	return domain.Billing{
		TaxRate:    settings.DefaultTaxRate,
		Currency:   settings.Currency(),
		Categories: settings.Categories.Data(),
	}, nil
}

func (s *Service) setInstanceRegistration(ctx context.Context, allowed bool) error {
	instance, err := s.getOrCreate(ctx, 0)
	if err != nil {
		return err
	}
	if instance.AllowRegistration == allowed {
		return nil
	}
	instance.AllowRegistration = allowed
	instance.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, s.db, &instance)
}

func (s *Service) RegistrationAllowed(ctx context.Context) (bool, error) {
	// Owner zero is the instance-wide record.
	settings, err := s.getOrCreate(ctx, 0)
	if err != nil {
		return false, err
	}
	return settings.AllowRegistration, nil
}

// getOrCreate is the read-triggers-write resolution path: absent records are
// created with defaults, duplicate records are pruned to the oldest.
func (s *Service) getOrCreate(ctx context.Context, ownerID snowflake.ID) (domain.Settings, error) {
	records, err := s.repo.FindByOwner(ctx, s.db, ownerID)
	if err != nil {
		return domain.Settings{}, err
	}

	if len(records) == 0 {
		created := s.defaultSettings(ownerID)
		if err := s.repo.Insert(ctx, s.db, &created); err != nil {
			return domain.Settings{}, err
		}
		return created, nil
	}

	if len(records) > 1 {
		extra := make([]snowflake.ID, 0, len(records)-1)
		for _, record := range records[1:] {
			extra = append(extra, record.ID)
		}
		if err := s.repo.DeleteByIDs(ctx, s.db, extra); err != nil {
			return domain.Settings{}, err
		}
		s.log.Warn("pruned duplicate settings records",
			zap.String("owner_id", ownerID.String()),
			zap.Int("removed", len(extra)),
		)
	}

	return *records[0], nil
}

func (s *Service) defaultSettings(ownerID snowflake.ID) domain.Settings {
	categories := make([]domain.Category, 0, len(s.defaults.Categories))
	for _, category := range s.defaults.Categories {
		categories = append(categories, domain.Category{Name: category.Name, Code: category.Code})
	}

	now := time.Now().UTC()
	return domain.Settings{
		ID:                s.genID.Generate(),
		OwnerID:           ownerID,
		DefaultTaxRate:    decimal.NewFromFloat(s.defaults.TaxRate),
		CurrencyCode:      s.defaults.CurrencyCode,
		CurrencySymbol:    s.defaults.CurrencySymbol,
		Categories:        datatypes.NewJSONType(categories),
		AllowRegistration: true,
		BusinessInfo:      datatypes.NewJSONType(domain.BusinessInfo{}),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func mergeBusinessInfo(current domain.BusinessInfo, patch domain.BusinessInfoPatch) domain.BusinessInfo {
	if patch.CNIE != nil {
		current.CNIE = strings.TrimSpace(*patch.CNIE)
	}
	if patch.IF != nil {
		current.IF = strings.TrimSpace(*patch.IF)
	}
	if patch.TaxeProfessionnelle != nil {
		current.TaxeProfessionnelle = strings.TrimSpace(*patch.TaxeProfessionnelle)
	}
	if patch.ICE != nil {
		current.ICE = strings.TrimSpace(*patch.ICE)
	}
	if patch.Telephone != nil {
		current.Telephone = strings.TrimSpace(*patch.Telephone)
	}
	if patch.Website != nil {
		current.Website = strings.TrimSpace(*patch.Website)
	}
	if patch.Email != nil {
		current.Email = strings.TrimSpace(*patch.Email)
	}
	return current
}
