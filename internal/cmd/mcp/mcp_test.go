package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("VALLEYCAST_FORECAST_ADDR", "")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ForecastAddr != "" {
		t.Fatalf("expected empty forecast addr, got %q", cfg.ForecastAddr)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("VALLEYCAST_FORECAST_ADDR", "env-forecast:8095")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ForecastAddr != "env-forecast:8095" {
		t.Fatalf("expected env addr, got %q", cfg.ForecastAddr)
	}

	fs = flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err = ParseConfig(fs, []string{"-forecast-addr", "flag-forecast:1"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ForecastAddr != "flag-forecast:1" {
		t.Fatalf("expected flag addr, got %q", cfg.ForecastAddr)
	}
}
