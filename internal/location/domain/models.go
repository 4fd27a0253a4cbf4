// Package domain contains the commission assignment models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Commission is the organizational unit a watcher observes at.
type Commission struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Code      string       `json:"code" gorm:"type:text;not null"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Region    string       `json:"region" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Commission) TableName() string { return "commissions" }

// Location links a watcher to a commission at a point in time. The most
// recently created location decides the watcher's current commission.
type Location struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	WatcherID    snowflake.ID `json:"watcher_id" gorm:"not null;index"`
	CommissionID snowflake.ID `json:"commission_id" gorm:"not null"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Location) TableName() string { return "locations" }
