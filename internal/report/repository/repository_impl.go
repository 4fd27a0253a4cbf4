package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	reportdomain "github.com/fieldwatch/fieldwatch/internal/report/domain"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() reportdomain.Repository {
	return &repo{}
}

func (r *repo) FindByWatcher(ctx context.Context, db *gorm.DB, watcherID snowflake.ID) (*reportdomain.Report, error) {
	var report reportdomain.Report
	err := db.WithContext(ctx).Raw(
		`SELECT id, watcher_id, device_message_id, commission_id, recorded_at, report_key, report_value, status, created_at, updated_at
		 FROM watcher_reports WHERE watcher_id = ?`,
		watcherID,
	).Scan(&report).Error
	if err != nil {
		return nil, err
	}
	if report.ID == 0 {
		return nil, nil
	}
	return &report, nil
}

func (r *repo) ListByWatcher(ctx context.Context, db *gorm.DB, watcherID snowflake.ID) ([]reportdomain.Report, error) {
	var reports []reportdomain.Report
	err := db.WithContext(ctx).Raw(
		`SELECT id, watcher_id, device_message_id, commission_id, recorded_at, report_key, report_value, status, created_at, updated_at
		 FROM watcher_reports WHERE watcher_id = ? ORDER BY id ASC`,
		watcherID,
	).Scan(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, report *reportdomain.Report) error {
	// status and created_at are deliberately absent from the assignment
	// list: projection never writes status, and the original row keeps its
	// creation time when the insert lands on an existing watcher_id.
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "watcher_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"device_message_id",
			"commission_id",
			"recorded_at",
			"report_key",
			"report_value",
			"updated_at",
		}),
	}).Create(report).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, report *reportdomain.Report) error {
	return db.WithContext(ctx).Exec(
		`UPDATE watcher_reports
		 SET device_message_id = ?, commission_id = ?, recorded_at = ?, report_key = ?, report_value = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		report.DeviceMessageID,
		report.CommissionID,
		report.RecordedAt,
		report.Key,
		report.Value,
		report.Status.String(),
		report.UpdatedAt,
		report.ID,
	).Error
}

func (r *repo) BulkUpdateStatus(ctx context.Context, db *gorm.DB, watcherID snowflake.ID, status watcherdomain.ReviewStatus) error {
	return db.WithContext(ctx).Exec(
		`UPDATE watcher_reports SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE watcher_id = ?`,
		status.String(),
		watcherID,
	).Error
}
