package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, settings *Settings) error
	// FindByOwner returns every record for the owner ordered oldest first.
	FindByOwner(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) ([]*Settings, error)
	Update(ctx context.Context, db *gorm.DB, settings *Settings) error
	DeleteByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error
}
