package watcher

import (
	"github.com/fieldwatch/fieldwatch/internal/watcher/repository"
	"github.com/fieldwatch/fieldwatch/internal/watcher/service"
	"go.uber.org/fx"
)

var Module = fx.Module("watcher.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
