package feecalc

import (
	"github.com/packlane/packlane/internal/feecalc/service"
	"go.uber.org/fx"
)

var Module = fx.Module("feecalc.service",
	fx.Provide(service.New),
)
