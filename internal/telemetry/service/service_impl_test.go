package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	locationdomain "github.com/fieldwatch/fieldwatch/internal/location/domain"
	locationrepo "github.com/fieldwatch/fieldwatch/internal/location/repository"
	locationservice "github.com/fieldwatch/fieldwatch/internal/location/service"
	reportdomain "github.com/fieldwatch/fieldwatch/internal/report/domain"
	reportrepo "github.com/fieldwatch/fieldwatch/internal/report/repository"
	reportservice "github.com/fieldwatch/fieldwatch/internal/report/service"
	telemetrydomain "github.com/fieldwatch/fieldwatch/internal/telemetry/domain"
	"github.com/fieldwatch/fieldwatch/internal/telemetry/repository"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
	watcherrepo "github.com/fieldwatch/fieldwatch/internal/watcher/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ingestFixture struct {
	db      *gorm.DB
	node    *snowflake.Node
	service telemetrydomain.Service
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&watcherdomain.Watcher{},
		&locationdomain.Commission{},
		&locationdomain.Location{},
		&telemetrydomain.DeviceMessage{},
		&reportdomain.Report{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	resolver := locationservice.New(locationservice.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: locationrepo.Provide(),
	})

	_, projector := reportservice.New(reportservice.Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     reportrepo.Provide(),
		Resolver: resolver,
	})

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		WatcherRepo: watcherrepo.Provide(),
		Projector:   projector,
	})

	return &ingestFixture{db: db, node: node, service: svc}
}

func (f *ingestFixture) seedWatcher(t *testing.T) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	now := time.Now().UTC()
	require.NoError(t, f.db.Create(&watcherdomain.Watcher{
		ID:           id,
		Name:         "watcher",
		ReviewStatus: watcherdomain.StatusNone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error)
	return id
}

func (f *ingestFixture) count(t *testing.T, table string, watcherID snowflake.ID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Raw(
		`SELECT COUNT(*) FROM `+table+` WHERE watcher_id = ?`, watcherID,
	).Scan(&count).Error)
	return count
}

func TestIngest_CreatesMessageAndReport(t *testing.T) {
	f := newIngestFixture(t)
	watcherID := f.seedWatcher(t)

	msg, err := f.service.Ingest(context.Background(), telemetrydomain.CreateMessageRequest{
		WatcherID: watcherID.String(),
		Payload: map[string]string{
			"timestamp": "1700000000",
			"key":       "battery",
			"value":     "87",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, watcherID, msg.WatcherID)

	assert.EqualValues(t, 1, f.count(t, "device_messages", watcherID))
	assert.EqualValues(t, 1, f.count(t, "watcher_reports", watcherID))

	var report reportdomain.Report
	require.NoError(t, f.db.Where("watcher_id = ?", watcherID).First(&report).Error)
	assert.Equal(t, msg.ID, report.DeviceMessageID)
	assert.Equal(t, "battery", report.Key)
	assert.Equal(t, "87", report.Value)
}

func TestIngest_RepeatedMessagesKeepOneReport(t *testing.T) {
	f := newIngestFixture(t)
	watcherID := f.seedWatcher(t)

	for i, value := range []string{"10", "20", "30"} {
		_, err := f.service.Ingest(context.Background(), telemetrydomain.CreateMessageRequest{
			WatcherID: watcherID.String(),
			Payload: map[string]string{
				"timestamp": "170000000" + string(rune('0'+i)),
				"key":       "battery",
				"value":     value,
			},
		})
		require.NoError(t, err)
	}

	assert.EqualValues(t, 3, f.count(t, "device_messages", watcherID))
	assert.EqualValues(t, 1, f.count(t, "watcher_reports", watcherID))

	var report reportdomain.Report
	require.NoError(t, f.db.Where("watcher_id = ?", watcherID).First(&report).Error)
	assert.Equal(t, "30", report.Value)
}

func TestIngest_MalformedPayloadPersistsNothing(t *testing.T) {
	f := newIngestFixture(t)
	watcherID := f.seedWatcher(t)

	_, err := f.service.Ingest(context.Background(), telemetrydomain.CreateMessageRequest{
		WatcherID: watcherID.String(),
		Payload:   map[string]string{"timestamp": "not-a-number", "key": "k", "value": "v"},
	})
	assert.ErrorIs(t, err, telemetrydomain.ErrMalformedPayload)

	// The message insert rolled back with the failed projection.
	assert.EqualValues(t, 0, f.count(t, "device_messages", watcherID))
	assert.EqualValues(t, 0, f.count(t, "watcher_reports", watcherID))
}

func TestIngest_WatcherValidation(t *testing.T) {
	f := newIngestFixture(t)

	_, err := f.service.Ingest(context.Background(), telemetrydomain.CreateMessageRequest{
		WatcherID: "garbage",
		Payload:   map[string]string{"timestamp": "1700000000"},
	})
	assert.ErrorIs(t, err, telemetrydomain.ErrInvalidWatcher)

	_, err = f.service.Ingest(context.Background(), telemetrydomain.CreateMessageRequest{
		WatcherID: f.node.Generate().String(),
		Payload:   map[string]string{"timestamp": "1700000000"},
	})
	assert.ErrorIs(t, err, watcherdomain.ErrNotFound)
}

func TestActiveWatcherCount(t *testing.T) {
	f := newIngestFixture(t)

	count, err := f.service.ActiveWatcherCount(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	first := f.seedWatcher(t)
	second := f.seedWatcher(t)

	for _, id := range []snowflake.ID{first, first, second} {
		_, err := f.service.Ingest(context.Background(), telemetrydomain.CreateMessageRequest{
			WatcherID: id.String(),
			Payload:   map[string]string{"timestamp": "1700000000", "key": "k", "value": "v"},
		})
		require.NoError(t, err)
	}

	count, err = f.service.ActiveWatcherCount(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
