package calclog

import (
	"github.com/packlane/packlane/internal/calclog/repository"
	"github.com/packlane/packlane/internal/calclog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("calclog.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
