package domain

import (
	"context"
	"errors"
	"math"
	"strconv"
)

type Service interface {
	// Ingest persists the device message and projects the owning watcher's
	// report in one transaction. Either both records land or neither does.
	Ingest(ctx context.Context, req CreateMessageRequest) (*DeviceMessage, error)
	// ActiveWatcherCount reports how many distinct watchers have submitted
	// at least one device message.
	ActiveWatcherCount(ctx context.Context) (int64, error)
}

type CreateMessageRequest struct {
	WatcherID string            `json:"watcher_id"`
	Payload   map[string]string `json:"payload"`
}

var (
	ErrMalformedPayload = errors.New("malformed_payload")
	ErrInvalidWatcher   = errors.New("invalid_watcher")
)

// ParseEpoch parses an epoch-seconds payload value. Non-numeric input is a
// hard error rather than a silent zero timestamp.
func ParseEpoch(raw string) (int64, error) {
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrMalformedPayload
	}
	return seconds, nil
}

func formatEpoch(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
