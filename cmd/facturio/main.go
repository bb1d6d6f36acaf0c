package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/auth"
	"github.com/facturio/facturio/internal/cache"
	"github.com/facturio/facturio/internal/client"
	"github.com/facturio/facturio/internal/config"
	"github.com/facturio/facturio/internal/dashboard"
	"github.com/facturio/facturio/internal/invoice"
	"github.com/facturio/facturio/internal/logger"
	"github.com/facturio/facturio/internal/migration"
	"github.com/facturio/facturio/internal/observability"
	"github.com/facturio/facturio/internal/project"
	"github.com/facturio/facturio/internal/providers/pdf"
	"github.com/facturio/facturio/internal/scheduler"
	"github.com/facturio/facturio/internal/server"
	"github.com/facturio/facturio/internal/settings"
	"github.com/facturio/facturio/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		cache.Module,

		// Functional domains
		settings.Module,
		auth.Module,
		client.Module,
		project.Module,
		invoice.Module,
		dashboard.Module,
		pdf.Module,
		scheduler.Module,

		server.Module,
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
