package obligation

import (
	"github.com/packlane/packlane/internal/obligation/repository"
	"github.com/packlane/packlane/internal/obligation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("obligation.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
