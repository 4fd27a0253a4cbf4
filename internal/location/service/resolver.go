package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	locationdomain "github.com/fieldwatch/fieldwatch/internal/location/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo locationdomain.Repository
}

// Resolver resolves a watcher's current commission from the latest location.
// It performs a fresh read on every call; nothing is cached across requests,
// so a watcher's location change is visible immediately.
type Resolver struct {
	db   *gorm.DB
	log  *zap.Logger
	repo locationdomain.Repository
}

func New(p Params) locationdomain.Resolver {
	return &Resolver{
		db:   p.DB,
		log:  p.Log.Named("location.resolver"),
		repo: p.Repo,
	}
}

func (r *Resolver) Resolve(ctx context.Context, watcherID snowflake.ID) (*locationdomain.Commission, error) {
	loc, err := r.repo.CurrentByWatcher(ctx, r.db, watcherID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	return r.repo.FindCommission(ctx, r.db, loc.CommissionID)
}
