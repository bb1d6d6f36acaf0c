package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ProjectStatus represents project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "pending"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// ValidStatus reports whether value is a known project status.
func ValidStatus(value ProjectStatus) bool {
	switch value {
	case ProjectStatusPending, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	default:
		return false
	}
}

// Project is a unit of billable work for one client. Category is stored
// lowercase and is immutable after creation because generated invoice
// numbers embed it.
type Project struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	OwnerID     snowflake.ID  `gorm:"not null;index" json:"owner_id"`
	ClientID    snowflake.ID  `gorm:"not null;index" json:"client_id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	Category    string        `gorm:"type:text;not null" json:"category"`
	Status      ProjectStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	StartDate   *time.Time    `gorm:"" json:"start_date,omitempty"`
	EndDate     *time.Time    `gorm:"" json:"end_date,omitempty"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Project) TableName() string { return "projects" }
