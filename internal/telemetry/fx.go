package telemetry

import (
	"github.com/fieldwatch/fieldwatch/internal/telemetry/repository"
	"github.com/fieldwatch/fieldwatch/internal/telemetry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("telemetry.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
