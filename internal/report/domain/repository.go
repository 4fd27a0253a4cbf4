package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
	"gorm.io/gorm"
)

type Repository interface {
	FindByWatcher(ctx context.Context, db *gorm.DB, watcherID snowflake.ID) (*Report, error)
	ListByWatcher(ctx context.Context, db *gorm.DB, watcherID snowflake.ID) ([]Report, error)
	// Upsert writes the report keyed on the watcher_id unique index, so two
	// concurrent first messages for one watcher converge on a single row.
	Upsert(ctx context.Context, db *gorm.DB, report *Report) error
	// Save re-saves a loaded report through the full validation path.
	Save(ctx context.Context, db *gorm.DB, report *Report) error
	// BulkUpdateStatus sets status on every report owned by the watcher in a
	// single statement, bypassing per-row validation.
	BulkUpdateStatus(ctx context.Context, db *gorm.DB, watcherID snowflake.ID, status watcherdomain.ReviewStatus) error
}
