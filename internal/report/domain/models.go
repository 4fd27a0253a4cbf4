// Package domain contains the derived watcher report model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
)

// Report is the single derived current-status record per watcher. Each
// incoming device message overwrites it in place; the unique index on
// watcher_id is what holds the one-report-per-watcher invariant under
// concurrent ingestion.
type Report struct {
	ID              snowflake.ID               `json:"id" gorm:"primaryKey"`
	WatcherID       snowflake.ID               `json:"watcher_id" gorm:"not null;uniqueIndex:ux_watcher_reports_watcher"`
	DeviceMessageID snowflake.ID               `json:"device_message_id" gorm:"not null"`
	CommissionID    *snowflake.ID              `json:"commission_id,omitempty"`
	RecordedAt      time.Time                  `json:"recorded_at" gorm:"not null"`
	// Stored as report_key/report_value; KEY is reserved in mysql.
	Key             string                     `json:"key" gorm:"column:report_key;type:text;not null"`
	Value           string                     `json:"value" gorm:"column:report_value;type:text;not null"`
	Status          watcherdomain.ReviewStatus `json:"status" gorm:"type:text"`
	CreatedAt       time.Time                  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time                  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Report) TableName() string { return "watcher_reports" }

// Validate checks the report's own invariants. It runs on every save through
// the full-save path, which includes the approved-cascade re-save pass.
func (r *Report) Validate() error {
	if r.WatcherID == 0 || r.DeviceMessageID == 0 {
		return ErrInvalidReport
	}
	if r.Status != "" {
		if _, err := watcherdomain.ParseReviewStatus(r.Status.String()); err != nil {
			return ErrInvalidReport
		}
	}
	return nil
}
