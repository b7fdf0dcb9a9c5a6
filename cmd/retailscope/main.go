package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/retailscope/internal/clock"
	"github.com/smallbiznis/retailscope/internal/config"
	"github.com/smallbiznis/retailscope/internal/migration"
	"github.com/smallbiznis/retailscope/internal/observability"
	"github.com/smallbiznis/retailscope/internal/server"
	"github.com/smallbiznis/retailscope/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
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
