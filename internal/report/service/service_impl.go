package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	locationdomain "github.com/fieldwatch/fieldwatch/internal/location/domain"
	reportdomain "github.com/fieldwatch/fieldwatch/internal/report/domain"
	telemetrydomain "github.com/fieldwatch/fieldwatch/internal/telemetry/domain"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     reportdomain.Repository
	Resolver locationdomain.Resolver
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     reportdomain.Repository
	resolver locationdomain.Resolver
}

func New(p Params) (reportdomain.Service, reportdomain.Projector) {
	s := &Service{
		db:       p.DB,
		log:      p.Log.Named("report.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		resolver: p.Resolver,
	}
	return s, s
}

// Project writes the watcher's single report from the message payload. The
// commission is resolved now and frozen into the row; later location changes
// do not rewrite past reports.
func (s *Service) Project(ctx context.Context, tx *gorm.DB, msg *telemetrydomain.DeviceMessage) (*reportdomain.Report, error) {
	rawTS, ok := msg.PayloadString(telemetrydomain.PayloadKeyTimestamp)
	if !ok {
		return nil, telemetrydomain.ErrMalformedPayload
	}
	seconds, err := telemetrydomain.ParseEpoch(rawTS)
	if err != nil {
		return nil, err
	}

	var commissionID *snowflake.ID
	commission, err := s.resolver.Resolve(ctx, msg.WatcherID)
	if err != nil {
		return nil, err
	}
	if commission != nil {
		commissionID = &commission.ID
	}

	key, _ := msg.PayloadString(telemetrydomain.PayloadKeyKey)
	value, _ := msg.PayloadString(telemetrydomain.PayloadKeyValue)

	now := time.Now().UTC()
	report := &reportdomain.Report{
		ID:              s.genID.Generate(),
		WatcherID:       msg.WatcherID,
		DeviceMessageID: msg.ID,
		CommissionID:    commissionID,
		RecordedAt:      time.Unix(seconds, 0).UTC(),
		Key:             key,
		Value:           value,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Upsert(ctx, tx, report); err != nil {
		return nil, err
	}

	// The upsert keeps the original id and status when the watcher already
	// had a report, so read the row back instead of trusting the insert.
	saved, err := s.repo.FindByWatcher(ctx, tx, msg.WatcherID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, reportdomain.ErrNotFound
	}
	return saved, nil
}

func (s *Service) GetByWatcher(ctx context.Context, watcherID string) (*reportdomain.Report, error) {
	id, err := watcherdomain.ParseID(watcherID)
	if err != nil {
		return nil, watcherdomain.ErrInvalidID
	}

	report, err := s.repo.FindByWatcher(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, reportdomain.ErrNotFound
	}
	return report, nil
}
