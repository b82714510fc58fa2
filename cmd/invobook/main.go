package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/invobook/invobook/internal/config"
	"github.com/invobook/invobook/internal/logger"
	"github.com/invobook/invobook/internal/migration"
	"github.com/invobook/invobook/internal/server"
	"github.com/invobook/invobook/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
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
