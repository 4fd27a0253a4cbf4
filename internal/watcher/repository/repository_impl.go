package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() watcherdomain.Repository {
	return &repo{}
}

// statusScopes enumerates one predicate per review status. The set is spelled
// out explicitly so an unknown status can never reach the query builder.
var statusScopes = map[watcherdomain.ReviewStatus]func(*gorm.DB) *gorm.DB{
	watcherdomain.StatusPending:  scopeFor(watcherdomain.StatusPending),
	watcherdomain.StatusApproved: scopeFor(watcherdomain.StatusApproved),
	watcherdomain.StatusRejected: scopeFor(watcherdomain.StatusRejected),
	watcherdomain.StatusProblem:  scopeFor(watcherdomain.StatusProblem),
	watcherdomain.StatusBlocked:  scopeFor(watcherdomain.StatusBlocked),
	watcherdomain.StatusNone:     scopeFor(watcherdomain.StatusNone),
}

func scopeFor(status watcherdomain.ReviewStatus) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("review_status = ?", status.String())
	}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, w *watcherdomain.Watcher) error {
	w.Normalize()
	return db.WithContext(ctx).Exec(
		`INSERT INTO watchers (id, name, review_status, kind, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID,
		w.Name,
		w.ReviewStatus.String(),
		string(w.Kind),
		w.CreatedAt,
		w.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*watcherdomain.Watcher, error) {
	var w watcherdomain.Watcher
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, review_status, kind, created_at, updated_at
		 FROM watchers WHERE id = ?`,
		id,
	).Scan(&w).Error
	if err != nil {
		return nil, err
	}
	if w.ID == 0 {
		return nil, nil
	}
	w.Normalize()
	return &w, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, status *watcherdomain.ReviewStatus) ([]watcherdomain.Watcher, error) {
	stmt := db.WithContext(ctx).Model(&watcherdomain.Watcher{})
	if status != nil {
		scope, ok := statusScopes[*status]
		if !ok {
			return nil, watcherdomain.ErrInvalidStatus
		}
		stmt = scope(stmt)
	}

	var watchers []watcherdomain.Watcher
	if err := stmt.Order("created_at ASC").Find(&watchers).Error; err != nil {
		return nil, err
	}
	for i := range watchers {
		watchers[i].Normalize()
	}
	return watchers, nil
}

func (r *repo) UpdateReviewStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status watcherdomain.ReviewStatus) error {
	return db.WithContext(ctx).Exec(
		`UPDATE watchers SET review_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status.String(),
		id,
	).Error
}

func (r *repo) UpdateKind(ctx context.Context, db *gorm.DB, id snowflake.ID, kind watcherdomain.Kind) error {
	return db.WithContext(ctx).Exec(
		`UPDATE watchers SET kind = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(kind),
		id,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM watchers WHERE id = ?`,
		id,
	).Error
}
