package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	telemetrydomain "github.com/fieldwatch/fieldwatch/internal/telemetry/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() telemetrydomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, msg *telemetrydomain.DeviceMessage) error {
	return db.WithContext(ctx).Create(msg).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*telemetrydomain.DeviceMessage, error) {
	var msg telemetrydomain.DeviceMessage
	err := db.WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *repo) ListByWatcher(ctx context.Context, db *gorm.DB, watcherID snowflake.ID) ([]telemetrydomain.DeviceMessage, error) {
	var msgs []telemetrydomain.DeviceMessage
	err := db.WithContext(ctx).
		Where("watcher_id = ?", watcherID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *repo) CountDistinctWatchers(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT watcher_id) FROM device_messages`,
	).Scan(&count).Error
	return count, err
}
