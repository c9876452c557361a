package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/dhruvent/billing/internal/clock"
	"github.com/dhruvent/billing/internal/config"
	"github.com/dhruvent/billing/internal/export"
	"github.com/dhruvent/billing/internal/invoice"
	"github.com/dhruvent/billing/internal/observability"
	"github.com/dhruvent/billing/internal/providers"
	"github.com/dhruvent/billing/internal/server"
	"github.com/dhruvent/billing/internal/store"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		store.Module,

		invoice.Module,
		providers.Module,
		export.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
