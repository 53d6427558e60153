//go:build wireinject
// +build wireinject

package main

import (
	"LuckyChat/config"
	"LuckyChat/dao"
	"LuckyChat/dao/cache"
	"LuckyChat/handler"
	"LuckyChat/pkg/client"
	"LuckyChat/pkg/database"
	"LuckyChat/pkg/keylock"
	"LuckyChat/pkg/llm"
	"LuckyChat/pkg/notify"
	"LuckyChat/pkg/server"
	"LuckyChat/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		database.NewDB,
		keylock.New,
		llm.NewClient,
		notify.NewHub,
		wire.Bind(new(service.Notifier), new(*notify.Hub)),
		server.NewGinEngine,

		cache.ProviderSet,
		dao.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Group), "*"),
		wire.Struct(new(handler.Affection), "*"),
		wire.Struct(new(handler.Persona), "*"),
		wire.Struct(new(handler.Bank), "*"),
		wire.Struct(new(handler.Chat), "*"),
		wire.Struct(new(handler.WebSocket), "*"),

		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}
