package domain

import (
	"context"
	"errors"

	telemetrydomain "github.com/fieldwatch/fieldwatch/internal/telemetry/domain"
	"gorm.io/gorm"
)

// Projector turns an incoming device message into the owning watcher's
// report. It runs inside the ingestion transaction.
type Projector interface {
	// Project creates or overwrites the watcher's report from the message.
	// The report's status field is left untouched; only the cascade writes
	// it. A malformed timestamp aborts the enclosing transaction.
	Project(ctx context.Context, tx *gorm.DB, msg *telemetrydomain.DeviceMessage) (*Report, error)
}

type Service interface {
	GetByWatcher(ctx context.Context, watcherID string) (*Report, error)
}

var (
	ErrNotFound      = errors.New("report_not_found")
	ErrInvalidReport = errors.New("invalid_report")
)
