// Package forecast parses forecast service flags and launches the service.
package forecast

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/valleycast/internal/platform/cmd"
	server "github.com/louisbranch/valleycast/internal/services/forecast/app"
)

// Config holds forecast command configuration.
type Config struct {
	Port int `env:"FORECAST_PORT" envDefault:"8095"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The forecast gRPC server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the forecast gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceForecast, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
