package observability

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dhruvent/billing/internal/observability/logger"
)

var Module = fx.Module("observability",
	fx.Provide(LoadConfig),
	fx.Provide(newLogger),
)

func newLogger(lc fx.Lifecycle, cfg Config) (*zap.Logger, error) {
	return logger.New(lc, logger.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
}
