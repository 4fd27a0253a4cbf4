// Package domain contains the watcher model and review-status rules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Watcher is a field observer whose eligibility is moderated through
// ReviewStatus. Identity provisioning happens outside this service; a
// watcher row is assumed to exist before any telemetry arrives for it.
type Watcher struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"type:text;not null"`
	ReviewStatus ReviewStatus `json:"review_status" gorm:"type:text;not null;default:none"`
	Kind         Kind         `json:"kind" gorm:"type:text"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Watcher) TableName() string { return "watchers" }

// Normalize applies load-time defaults. A blank review status reads as none.
func (w *Watcher) Normalize() {
	if w.ReviewStatus == "" {
		w.ReviewStatus = StatusNone
	}
}
