//go:build wireinject
// +build wireinject

package main

import (
	"Focus/config"
	"Focus/dao"
	"Focus/dao/cache"
	"Focus/handler"
	"Focus/pkg/client"
	"Focus/pkg/database"
	"Focus/pkg/idgen"
	"Focus/pkg/rocketmq"
	"Focus/pkg/server"
	"Focus/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		rocketmq.InitProducer,
		idgen.NewGenerator,
		server.NewGinEngine,

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Fragment), "*"),
		wire.Struct(new(handler.Reward), "*"),
		wire.Struct(new(handler.Lottery), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),
	)
	return nil
}
