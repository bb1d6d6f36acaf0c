package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Address is the structured postal address stored on a client.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`
}

// Client is a billable counterparty owned by one user. RC and ICE are the
// Moroccan trade-register and common-enterprise identifiers.
type Client struct {
	ID        snowflake.ID                `gorm:"primaryKey" json:"id"`
	OwnerID   snowflake.ID                `gorm:"not null;index" json:"owner_id"`
	Name      string                      `gorm:"not null" json:"name"`
	Email     string                      `gorm:"not null" json:"email"`
	Company   string                      `gorm:"type:text" json:"company,omitempty"`
	Phone     string                      `gorm:"type:text" json:"phone,omitempty"`
	RC        string                      `gorm:"type:text" json:"rc,omitempty"`
	ICE       string                      `gorm:"type:text" json:"ice,omitempty"`
	Address   datatypes.JSONType[Address] `gorm:"not null" json:"address"`
	CreatedAt time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
