package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// CurrencyPatch merges field-wise into the stored currency.
type CurrencyPatch struct {
	Code   *string `json:"code"`
	Symbol *string `json:"symbol"`
}

// BusinessInfoPatch merges field-wise into the stored business profile.
type BusinessInfoPatch struct {
	CNIE                *string `json:"cnie"`
	IF                  *string `json:"if"`
	TaxeProfessionnelle *string `json:"taxe_professionnelle"`
	ICE                 *string `json:"ice"`
	Telephone           *string `json:"telephone"`
	Website             *string `json:"website"`
	Email               *string `json:"email"`
}

// UpdateSettingsRequest is a partial update. Nil fields are left untouched.
type UpdateSettingsRequest struct {
	DefaultTaxRate    *decimal.Decimal   `json:"default_tax_rate"`
	Currency          *CurrencyPatch     `json:"currency"`
	Categories        *[]Category        `json:"categories"`
	AllowRegistration *bool              `json:"allow_registration"`
	BusinessInfo      *BusinessInfoPatch `json:"business_info"`
}

// Billing is the resolved tax/currency/category context for invoice creation.
type Billing struct {
	TaxRate    decimal.Decimal
	Currency   Currency
	Categories []Category
}

type Service interface {
	// GetOrCreate returns the requesting owner's settings, creating a
	// defaulted record when none exists and pruning duplicates to one.
	GetOrCreate(ctx context.Context) (Settings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (Settings, error)

	// ResolveBilling returns the effective billing defaults for an owner,
	// creating the settings record when absent.
	ResolveBilling(ctx context.Context, ownerID snowflake.ID) (Billing, error)

	// RegistrationAllowed reads the instance-wide registration flag.
	RegistrationAllowed(ctx context.Context) (bool, error)
}

var (
	ErrInvalidOwner    = errors.New("invalid_owner")
	ErrInvalidTaxRate  = errors.New("invalid_tax_rate")
	ErrInvalidCategory = errors.New("invalid_category")
)
