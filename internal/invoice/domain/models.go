package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// transitions holds the allowed status moves. Paid and cancelled are terminal.
var transitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:   {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:    {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusOverdue: {InvoiceStatusPaid, InvoiceStatusCancelled},
}

// CanTransition reports whether an invoice may move from one status to
// another. Setting the same status again is always allowed.
func CanTransition(from, to InvoiceStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// LineItem is a single billable row. Amount is always Quantity times Rate,
// recomputed server side regardless of what the caller sent.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Currency is the display currency snapshotted from the owner's settings at
// creation time, so later settings changes never rewrite issued invoices.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

type Invoice struct {
	ID          snowflake.ID                    `json:"id,string" gorm:"primaryKey"`
	OwnerID     snowflake.ID                    `json:"owner_id,string" gorm:"index"`
	ClientID    snowflake.ID                    `json:"client_id,string" gorm:"index"`
	ProjectID   snowflake.ID                    `json:"project_id,string" gorm:"index"`
	Number      string                          `json:"number" gorm:"uniqueIndex"`
	Status      InvoiceStatus                   `json:"status" gorm:"index"`
	Currency    Currency                        `json:"currency" gorm:"embedded;embeddedPrefix:currency_"`
	Items       datatypes.JSONType[[]LineItem]  `json:"items"`
	Subtotal    decimal.Decimal                 `json:"subtotal" gorm:"type:decimal(14,2)"`
	TaxRate     decimal.Decimal                 `json:"tax_rate" gorm:"type:decimal(5,2)"`
	TaxAmount   decimal.Decimal                 `json:"tax_amount" gorm:"type:decimal(14,2)"`
	Total       decimal.Decimal                 `json:"total" gorm:"type:decimal(14,2)"`
	Notes       string                          `json:"notes"`
	InvoiceDate time.Time                       `json:"invoice_date"`
	DueDate     *time.Time                      `json:"due_date,omitempty"`
	CreatedAt   time.Time                       `json:"created_at"`
	UpdatedAt   time.Time                       `json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// Counter tracks the last sequence issued for a numbering bucket
// (month, year and project category).
type Counter struct {
	Bucket string `gorm:"primaryKey"`
	Seq    int64
}

func (Counter) TableName() string {
	return "invoice_counters"
}
