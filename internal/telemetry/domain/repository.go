package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, msg *DeviceMessage) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*DeviceMessage, error)
	ListByWatcher(ctx context.Context, db *gorm.DB, watcherID snowflake.ID) ([]DeviceMessage, error)
	CountDistinctWatchers(ctx context.Context, db *gorm.DB) (int64, error)
}
