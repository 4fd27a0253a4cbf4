package location

import (
	"github.com/fieldwatch/fieldwatch/internal/location/repository"
	"github.com/fieldwatch/fieldwatch/internal/location/service"
	"go.uber.org/fx"
)

var Module = fx.Module("location.resolver",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
