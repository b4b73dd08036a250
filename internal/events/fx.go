package events

import (
	"context"

	"github.com/merchhaus/backoffice/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func NewRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func registerHooks(lc fx.Lifecycle, client *redis.Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
}

var Module = fx.Module("events",
	fx.Provide(
		NewRedisClient,
		fx.Annotate(NewRedisPublisher, fx.As(new(Publisher))),
	),
	fx.Invoke(registerHooks),
)
