// Package mcp parses MCP command flags and serves the tools on stdio.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/valleycast/internal/platform/cmd"
	mcpservice "github.com/louisbranch/valleycast/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	// ForecastAddr routes tool calls to a forecast service. Empty computes
	// forecasts in process.
	ForecastAddr string `env:"FORECAST_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.ForecastAddr, "forecast-addr", cfg.ForecastAddr, "forecast server address (empty computes in process)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{ForecastAddr: cfg.ForecastAddr})
	})
}
