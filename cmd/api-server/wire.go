//go:build wireinject
// +build wireinject

package main

import (
	"Carnival/config"
	"Carnival/dao"
	"Carnival/dao/cache"
	"Carnival/handler"
	"Carnival/pkg/client"
	"Carnival/pkg/database"
	"Carnival/pkg/live"
	"Carnival/pkg/server"
	"Carnival/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		live.NewHub,
		server.NewGinEngine,
		cache.ProviderSet,
		wire.Struct(new(handler.Account), "*"),
		wire.Struct(new(handler.Gacha), "*"),
		wire.Struct(new(handler.Vote), "*"),
		wire.Struct(new(handler.Ticket), "*"),
		wire.Struct(new(handler.Admin), "*"),
		wire.Struct(new(handler.Live), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		database.NewDB,
	)
	return nil
}
