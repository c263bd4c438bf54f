package ecomod

import (
	"github.com/packlane/packlane/internal/ecomod/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ecomod.service",
	fx.Provide(service.New),
)
