package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/packlane/packlane/internal/clock"
	"github.com/packlane/packlane/internal/migration"
	"github.com/packlane/packlane/internal/observability"
	"github.com/packlane/packlane/internal/server"
	"github.com/packlane/packlane/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		server.Module,
		migration.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
