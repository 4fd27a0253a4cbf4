// Package domain contains the device telemetry models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Payload keys every device message must carry.
const (
	PayloadKeyTimestamp = "timestamp"
	PayloadKeyKey       = "key"
	PayloadKeyValue     = "value"
)

// DeviceMessage is one telemetry record submitted by a watcher's device.
// Messages are append-only; once written they are never modified.
type DeviceMessage struct {
	ID        snowflake.ID      `json:"id" gorm:"primaryKey"`
	WatcherID snowflake.ID      `json:"watcher_id" gorm:"not null;index"`
	Payload   datatypes.JSONMap `json:"payload" gorm:"type:jsonb;not null"`
	CreatedAt time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (DeviceMessage) TableName() string { return "device_messages" }

// PayloadString returns the named payload field as a string, tolerating
// numeric JSON values the way device firmware tends to send them.
func (m *DeviceMessage) PayloadString(key string) (string, bool) {
	raw, ok := m.Payload[key]
	if !ok {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return formatEpoch(v), true
	default:
		return "", false
	}
}
