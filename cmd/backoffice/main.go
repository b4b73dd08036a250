package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/merchhaus/backoffice/internal/clock"
	"github.com/merchhaus/backoffice/internal/config"
	"github.com/merchhaus/backoffice/internal/logger"
	"github.com/merchhaus/backoffice/internal/migration"
	"github.com/merchhaus/backoffice/internal/server"
	"github.com/merchhaus/backoffice/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
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
