// Package observability wires logging and metrics.
package observability

import (
	"github.com/ParthhMahajann/rera-quotation-system/internal/config"
	"github.com/ParthhMahajann/rera-quotation-system/internal/observability/logger"
	"github.com/ParthhMahajann/rera-quotation-system/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		provideLoggerConfig,
		logger.New,
		metrics.NewHTTPMetrics,
	),
)

func provideLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName:   cfg.AppName,
		Environment:   cfg.Environment,
		Version:       cfg.AppVersion,
		Level:         cfg.LogLevel,
		Format:        cfg.LogFormat,
		IncludeCaller: true,
	}
}
