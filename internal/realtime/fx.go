package realtime

import (
	"github.com/packlane/packlane/internal/realtime/liveevents"
	"github.com/packlane/packlane/internal/realtime/service"
	"go.uber.org/fx"
)

var Module = fx.Module("realtime.cache",
	fx.Provide(
		liveevents.NewHub,
		service.New,
	),
)
