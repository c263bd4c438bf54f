package feeapi

import "go.uber.org/fx"

var Module = fx.Module("feeapi.client",
	fx.Provide(NewClient),
)
