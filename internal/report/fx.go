package report

import (
	"github.com/fieldwatch/fieldwatch/internal/report/repository"
	"github.com/fieldwatch/fieldwatch/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
