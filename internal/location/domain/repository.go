package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// CurrentByWatcher returns the watcher's most recently created location,
	// or nil when the watcher has none. Ties on created_at break on the
	// highest id.
	CurrentByWatcher(ctx context.Context, db *gorm.DB, watcherID snowflake.ID) (*Location, error)
	FindCommission(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Commission, error)
	Insert(ctx context.Context, db *gorm.DB, loc *Location) error
}
