package logger

import (
	"context"

	"github.com/merchhaus/backoffice/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewFromConfig builds the logger at the configured level.
func NewFromConfig(cfg config.Config) (*zap.Logger, error) {
	return New(cfg.LogLevel)
}

func syncOnStop(lc fx.Lifecycle, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
}

// Module wires the application logger and flushes it on shutdown.
var Module = fx.Module("logger",
	fx.Provide(NewFromConfig),
	fx.Invoke(syncOnStop),
)
