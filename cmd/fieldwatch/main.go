package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fieldwatch/fieldwatch/internal/config"
	"github.com/fieldwatch/fieldwatch/internal/logger"
	"github.com/fieldwatch/fieldwatch/internal/migration"
	"github.com/fieldwatch/fieldwatch/internal/observability"
	"github.com/fieldwatch/fieldwatch/internal/server"
	"github.com/fieldwatch/fieldwatch/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
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
