package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fieldwatch/fieldwatch/internal/config"
	"github.com/fieldwatch/fieldwatch/internal/location"
	locationdomain "github.com/fieldwatch/fieldwatch/internal/location/domain"
	"github.com/fieldwatch/fieldwatch/internal/observability"
	"github.com/fieldwatch/fieldwatch/internal/report"
	reportdomain "github.com/fieldwatch/fieldwatch/internal/report/domain"
	"github.com/fieldwatch/fieldwatch/internal/telemetry"
	telemetrydomain "github.com/fieldwatch/fieldwatch/internal/telemetry/domain"
	"github.com/fieldwatch/fieldwatch/internal/watcher"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	location.Module,
	report.Module,
	telemetry.Module,
	watcher.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *observability.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogMiddleware(log))
	r.Use(MetricsMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	watcherSvc   watcherdomain.Service
	telemetrySvc telemetrydomain.Service
	reportSvc    reportdomain.Service
	resolver     locationdomain.Resolver
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	WatcherSvc   watcherdomain.Service
	TelemetrySvc telemetrydomain.Service
	ReportSvc    reportdomain.Service
	Resolver     locationdomain.Resolver
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		watcherSvc:   p.WatcherSvc,
		telemetrySvc: p.TelemetrySvc,
		reportSvc:    p.ReportSvc,
		resolver:     p.Resolver,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// Telemetry ingestion
	api.POST("/messages", s.CreateDeviceMessage)

	// Watchers & moderation
	api.GET("/watchers", s.ListWatchers)
	api.GET("/watchers/:id", s.GetWatcherByID)
	api.PUT("/watchers/:id/status", s.SetWatcherReviewStatus)
	api.PUT("/watchers/:id/kind", s.SetWatcherKind)
	api.DELETE("/watchers/:id", s.DeleteWatcher)

	// Derived state
	api.GET("/watchers/:id/report", s.GetWatcherReport)
	api.GET("/watchers/:id/commission", s.GetWatcherCommission)

	// Stats
	api.GET("/stats/active", s.GetActiveWatcherCount)
}
