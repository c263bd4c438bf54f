package ratetable

import (
	"github.com/packlane/packlane/internal/ratetable/repository"
	"github.com/packlane/packlane/internal/ratetable/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ratetable.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
