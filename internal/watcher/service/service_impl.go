package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldwatch/fieldwatch/internal/observability"
	reportdomain "github.com/fieldwatch/fieldwatch/internal/report/domain"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Repo       watcherdomain.Repository
	ReportRepo reportdomain.Repository
	Metrics    *observability.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       watcherdomain.Repository
	reportRepo reportdomain.Repository
	metrics    *observability.Metrics
}

func New(p Params) watcherdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("watcher.service"),
		repo:       p.Repo,
		reportRepo: p.ReportRepo,
		metrics:    p.Metrics,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*watcherdomain.Response, error) {
	watcherID, err := watcherdomain.ParseID(id)
	if err != nil {
		return nil, watcherdomain.ErrInvalidID
	}

	w, err := s.repo.FindByID(ctx, s.db, watcherID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, watcherdomain.ErrNotFound
	}
	return toResponse(w), nil
}

func (s *Service) List(ctx context.Context, req watcherdomain.ListRequest) ([]watcherdomain.Response, error) {
	var status *watcherdomain.ReviewStatus
	if req.Status != "" {
		parsed, err := watcherdomain.ParseReviewStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}

	watchers, err := s.repo.List(ctx, s.db, status)
	if err != nil {
		return nil, err
	}

	resp := make([]watcherdomain.Response, 0, len(watchers))
	for i := range watchers {
		resp = append(resp, *toResponse(&watchers[i]))
	}
	return resp, nil
}

// SetReviewStatus persists a moderation decision and cascades it onto the
// watcher's reports. A transition to the value already held issues no write
// at all, to either table.
func (s *Service) SetReviewStatus(ctx context.Context, req watcherdomain.SetReviewStatusRequest) (*watcherdomain.Response, error) {
	watcherID, err := watcherdomain.ParseID(req.ID)
	if err != nil {
		return nil, watcherdomain.ErrInvalidID
	}

	status, err := watcherdomain.ParseReviewStatus(req.Status)
	if err != nil {
		return nil, err
	}

	w, err := s.repo.FindByID(ctx, s.db, watcherID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, watcherdomain.ErrNotFound
	}

	if w.ReviewStatus == status {
		return toResponse(w), nil
	}

	cascaded := false
	switch status {
	case watcherdomain.StatusRejected, watcherdomain.StatusProblem, watcherdomain.StatusBlocked:
		cascaded = true
		// The status write and the bulk cascade land together or not at
		// all. The cascade itself is a single predicate update with no
		// per-row callbacks.
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.repo.UpdateReviewStatus(ctx, tx, watcherID, status); err != nil {
				return err
			}
			return s.reportRepo.BulkUpdateStatus(ctx, tx, watcherID, status)
		})
		if err != nil {
			return nil, err
		}
	case watcherdomain.StatusApproved:
		cascaded = true
		if err := s.repo.UpdateReviewStatus(ctx, s.db, watcherID, status); err != nil {
			return nil, err
		}
		// Re-save every report through the full validation path without
		// changing any field. The pass is intentionally not transactional
		// across reports: the first failure stops the loop and the
		// already re-saved reports stay saved.
		if err := s.revalidateReports(ctx, watcherID); err != nil {
			return nil, err
		}
	default:
		// pending and none carry no cascade.
		if err := s.repo.UpdateReviewStatus(ctx, s.db, watcherID, status); err != nil {
			return nil, err
		}
	}

	if cascaded && s.metrics != nil {
		s.metrics.StatusCascades.WithLabelValues(status.String()).Inc()
	}
	s.log.Info("review status changed",
		zap.String("watcher_id", watcherID.String()),
		zap.String("from", w.ReviewStatus.String()),
		zap.String("to", status.String()),
	)

	w.ReviewStatus = status
	w.UpdatedAt = time.Now().UTC()
	return toResponse(w), nil
}

func (s *Service) revalidateReports(ctx context.Context, watcherID snowflake.ID) error {
	reports, err := s.reportRepo.ListByWatcher(ctx, s.db, watcherID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for i := range reports {
		if err := reports[i].Validate(); err != nil {
			return err
		}
		reports[i].UpdatedAt = now
		if err := s.reportRepo.Save(ctx, s.db, &reports[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) SetKind(ctx context.Context, req watcherdomain.SetKindRequest) (*watcherdomain.Response, error) {
	watcherID, err := watcherdomain.ParseID(req.ID)
	if err != nil {
		return nil, watcherdomain.ErrInvalidID
	}

	kind, err := watcherdomain.KindByIndex(req.KindIndex)
	if err != nil {
		return nil, err
	}

	w, err := s.repo.FindByID(ctx, s.db, watcherID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, watcherdomain.ErrNotFound
	}

	if err := s.repo.UpdateKind(ctx, s.db, watcherID, kind); err != nil {
		return nil, err
	}

	w.Kind = kind
	w.UpdatedAt = time.Now().UTC()
	return toResponse(w), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	watcherID, err := watcherdomain.ParseID(id)
	if err != nil {
		return watcherdomain.ErrInvalidID
	}

	w, err := s.repo.FindByID(ctx, s.db, watcherID)
	if err != nil {
		return err
	}
	if w == nil {
		return watcherdomain.ErrNotFound
	}

	// Device messages, reports and locations go with the watcher via the
	// ON DELETE CASCADE constraints.
	return s.repo.Delete(ctx, s.db, watcherID)
}

func toResponse(w *watcherdomain.Watcher) *watcherdomain.Response {
	return &watcherdomain.Response{
		ID:           w.ID.String(),
		Name:         w.Name,
		ReviewStatus: w.ReviewStatus,
		Kind:         w.Kind,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}
