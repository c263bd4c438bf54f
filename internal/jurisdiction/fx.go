package jurisdiction

import (
	"github.com/packlane/packlane/internal/jurisdiction/repository"
	"github.com/packlane/packlane/internal/jurisdiction/service"
	"go.uber.org/fx"
)

var Module = fx.Module("jurisdiction.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
