package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, w *Watcher) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Watcher, error)
	List(ctx context.Context, db *gorm.DB, status *ReviewStatus) ([]Watcher, error)
	UpdateReviewStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status ReviewStatus) error
	UpdateKind(ctx context.Context, db *gorm.DB, id snowflake.ID, kind Kind) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
