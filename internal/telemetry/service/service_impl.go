package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldwatch/fieldwatch/internal/observability"
	reportdomain "github.com/fieldwatch/fieldwatch/internal/report/domain"
	telemetrydomain "github.com/fieldwatch/fieldwatch/internal/telemetry/domain"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        telemetrydomain.Repository
	WatcherRepo watcherdomain.Repository
	Projector   reportdomain.Projector
	Metrics     *observability.Metrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        telemetrydomain.Repository
	watcherRepo watcherdomain.Repository
	projector   reportdomain.Projector
	metrics     *observability.Metrics
}

func New(p Params) telemetrydomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("telemetry.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		watcherRepo: p.WatcherRepo,
		projector:   p.Projector,
		metrics:     p.Metrics,
	}
}

// Ingest persists one device message and synchronously projects the owning
// watcher's report. The message insert and the report write share one
// transaction: a message without its report never becomes visible.
func (s *Service) Ingest(ctx context.Context, req telemetrydomain.CreateMessageRequest) (*telemetrydomain.DeviceMessage, error) {
	watcherID, err := watcherdomain.ParseID(req.WatcherID)
	if err != nil {
		return nil, telemetrydomain.ErrInvalidWatcher
	}

	w, err := s.watcherRepo.FindByID(ctx, s.db, watcherID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, watcherdomain.ErrNotFound
	}

	payload := make(datatypes.JSONMap, len(req.Payload))
	for k, v := range req.Payload {
		payload[k] = v
	}

	msg := &telemetrydomain.DeviceMessage{
		ID:        s.genID.Generate(),
		WatcherID: watcherID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, msg); err != nil {
			return err
		}
		_, err := s.projector.Project(ctx, tx, msg)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.MessagesIngested.Inc()
	}
	s.log.Debug("device message ingested",
		zap.String("message_id", msg.ID.String()),
		zap.String("watcher_id", watcherID.String()),
	)

	return msg, nil
}

func (s *Service) ActiveWatcherCount(ctx context.Context) (int64, error) {
	return s.repo.CountDistinctWatchers(ctx, s.db)
}
