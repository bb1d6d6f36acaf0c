// Package domain contains the per-owner settings record supplying tax,
// currency and category defaults.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Currency is the display currency applied to invoices.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// Category names one billable activity and the code used in invoice numbers.
type Category struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// BusinessInfo holds the business profile printed on invoices.
type BusinessInfo struct {
	CNIE                string `json:"cnie"`
	IF                  string `json:"if"`
	TaxeProfessionnelle string `json:"taxe_professionnelle"`
	ICE                 string `json:"ice"`
	Telephone           string `json:"telephone"`
	Website             string `json:"website"`
	Email               string `json:"email"`
}

// Settings is the lazily created configuration record for one owner. The row
// with OwnerID zero is the instance-wide record carrying the registration
// flag.
type Settings struct {
	ID                snowflake.ID                     `gorm:"primaryKey" json:"id"`
	OwnerID           snowflake.ID                     `gorm:"not null;index" json:"owner_id"`
	DefaultTaxRate    decimal.Decimal                  `gorm:"type:decimal(5,2);not null;default:0" json:"default_tax_rate"`
	CurrencyCode      string                           `gorm:"type:text;not null;default:'USD'" json:"-"`
	CurrencySymbol    string                           `gorm:"type:text;not null;default:'$'" json:"-"`
	Categories        datatypes.JSONType[[]Category]   `gorm:"not null" json:"categories"`
	AllowRegistration bool                             `gorm:"not null;default:true" json:"allow_registration"`
	BusinessInfo      datatypes.JSONType[BusinessInfo] `gorm:"not null" json:"business_info"`
	CreatedAt         time.Time                        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time                        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Settings) TableName() string { return "settings" }

// Currency assembles the currency value object.
func (s Settings) Currency() Currency {
	return Currency{Code: s.CurrencyCode, Symbol: s.CurrencySymbol}
}
