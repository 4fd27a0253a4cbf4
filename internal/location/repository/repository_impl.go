package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	locationdomain "github.com/fieldwatch/fieldwatch/internal/location/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() locationdomain.Repository {
	return &repo{}
}

func (r *repo) CurrentByWatcher(ctx context.Context, db *gorm.DB, watcherID snowflake.ID) (*locationdomain.Location, error) {
	var loc locationdomain.Location
	err := db.WithContext(ctx).Raw(
		`SELECT id, watcher_id, commission_id, created_at
		 FROM locations WHERE watcher_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		watcherID,
	).Scan(&loc).Error
	if err != nil {
		return nil, err
	}
	if loc.ID == 0 {
		return nil, nil
	}
	return &loc, nil
}

func (r *repo) FindCommission(ctx context.Context, db *gorm.DB, id snowflake.ID) (*locationdomain.Commission, error) {
	var commission locationdomain.Commission
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, region, created_at
		 FROM commissions WHERE id = ?`,
		id,
	).Scan(&commission).Error
	if err != nil {
		return nil, err
	}
	if commission.ID == 0 {
		return nil, nil
	}
	return &commission, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, loc *locationdomain.Location) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO locations (id, watcher_id, commission_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		loc.ID,
		loc.WatcherID,
		loc.CommissionID,
		loc.CreatedAt,
	).Error
}
