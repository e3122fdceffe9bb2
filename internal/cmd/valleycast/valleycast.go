// Package valleycast parses the forecast CLI flags and prints a month of
// mine conditions for one game.
package valleycast

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/louisbranch/valleycast/internal/calendar"
	"github.com/louisbranch/valleycast/internal/forecast"
	entrypoint "github.com/louisbranch/valleycast/internal/platform/cmd"
	platformerrors "github.com/louisbranch/valleycast/internal/platform/errors"
	platformgrpc "github.com/louisbranch/valleycast/internal/platform/grpc"
	"github.com/louisbranch/valleycast/internal/platform/timeouts"
	"github.com/louisbranch/valleycast/internal/random"
	"github.com/louisbranch/valleycast/internal/report"
	"github.com/louisbranch/valleycast/internal/save"
	forecastservice "github.com/louisbranch/valleycast/internal/services/forecast/api/grpc/forecast"
	"github.com/louisbranch/valleycast/internal/u64"
)

// Config holds CLI configuration.
type Config struct {
	SavePath    string `env:"SAVE"`
	GameID      string `env:"GAME_ID"`
	DaysPlayed  int64  `env:"DAYS_PLAYED"`
	Year        int    `env:"YEAR"`
	MonthOffset int    `env:"MONTH_OFFSET"`
	Days        int    `env:"DAYS"          envDefault:"28"`
	Addr        string `env:"FORECAST_ADDR"`
	Locale      string `env:"LOCALE"        envDefault:"en-US"`
	NoColor     bool   `env:"NO_COLOR"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.SavePath, "save", cfg.SavePath, "save file to read the game id and day counter from")
	fs.StringVar(&cfg.GameID, "game-id", cfg.GameID, "unique game id (ignored with -save)")
	fs.Int64Var(&cfg.DaysPlayed, "days-played", cfg.DaysPlayed, "days-played counter (ignored with -save)")
	fs.IntVar(&cfg.Year, "year", cfg.Year, "current year, used when -days-played is not set")
	fs.IntVar(&cfg.MonthOffset, "month-offset", cfg.MonthOffset, "seasons relative to the current one")
	fs.IntVar(&cfg.Days, "days", cfg.Days, "number of days to forecast")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "forecast server address (empty computes locally)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "output locale (en-US, pt-BR)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run prints the forecast to stdout.
func Run(ctx context.Context, cfg Config) error {
	if color.NoColor {
		cfg.NoColor = true
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceValleycast, func(ctx context.Context) error {
		return run(ctx, cfg, os.Stdout, random.NewSeed32)
	})
}

// Describe renders err for the terminal in the configured locale, keeping the
// underlying detail when it adds information.
func Describe(err error, locale string) string {
	message := platformerrors.Localize(err, locale)
	if detail := err.Error(); detail != message {
		return fmt.Sprintf("%s (%s)", message, detail)
	}
	return message
}

func run(ctx context.Context, cfg Config, stdout io.Writer, newSeed func() (int32, error)) error {
	if cfg.Days < 1 || cfg.Days > forecast.MaxDays {
		return platformerrors.WithMetadata(
			platformerrors.CodeForecastInvalidDayCount,
			fmt.Sprintf("days %d out of range", cfg.Days),
			map[string]string{"MaxDays": strconv.Itoa(forecast.MaxDays)},
		)
	}
	summary, err := resolveSummary(cfg, newSeed)
	if err != nil {
		return err
	}
	firstDay := forecast.MonthStartOffset(summary.DaysPlayed, cfg.MonthOffset)

	month, err := fetchMonth(ctx, cfg, summary.GameID, firstDay)
	if err != nil {
		return err
	}
	return report.Render(stdout, month, report.Options{
		Locale:  report.ResolveLocale(cfg.Locale),
		NoColor: cfg.NoColor,
	})
}

// resolveSummary picks the game from a save, the flags, or a random id.
func resolveSummary(cfg Config, newSeed func() (int32, error)) (save.Summary, error) {
	if path := strings.TrimSpace(cfg.SavePath); path != "" {
		summary, err := save.ReadFile(path)
		if err != nil {
			return save.Summary{}, platformerrors.Wrap(platformerrors.CodeSaveInvalid, "read save "+path, err)
		}
		return summary, nil
	}

	daysPlayed := cfg.DaysPlayed
	if daysPlayed == 0 && cfg.Year > 1 {
		daysPlayed = int64(cfg.Year-1)*calendar.DaysPerYear + 1
	}

	gameID := strings.TrimSpace(cfg.GameID)
	if gameID == "" {
		seed, err := newSeed()
		if err != nil {
			return save.Summary{}, fmt.Errorf("generate game id: %w", err)
		}
		gameID = u64.FromUint32(uint32(seed)).String()
		log.Printf("no game id given, using random game id %s", gameID)
	}

	summary, err := save.NewSummary(gameID, daysPlayed, cfg.Year)
	switch {
	case errors.Is(err, u64.ErrSyntax):
		return save.Summary{}, platformerrors.WrapWithMetadata(
			platformerrors.CodeGameIDInvalid,
			"parse game id",
			map[string]string{"GameID": gameID},
			err,
		)
	case errors.Is(err, save.ErrInvalidYear):
		return save.Summary{}, platformerrors.Wrap(platformerrors.CodeYearInvalid, err.Error(), err)
	case errors.Is(err, save.ErrInvalidDaysPlayed):
		return save.Summary{}, platformerrors.Wrap(platformerrors.CodeForecastInvalidFirstDay, err.Error(), err)
	case err != nil:
		return save.Summary{}, err
	}
	return summary, nil
}

// fetchMonth computes the forecast locally, or asks a forecast server when an
// address is configured.
func fetchMonth(ctx context.Context, cfg Config, gameID u64.Value, firstDay int64) (forecast.Month, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return forecast.ForecastMines(gameID, firstDay, cfg.Days)
	}

	conn, err := platformgrpc.DialWithHealth(
		ctx,
		nil,
		addr,
		forecastservice.ServiceName,
		timeouts.GRPCDial,
		log.Printf,
		platformgrpc.DefaultClientDialOptions()...,
	)
	if err != nil {
		return forecast.Month{}, fmt.Errorf("connect to forecast server: %w", err)
	}
	defer conn.Close()

	callCtx, cancel := context.WithTimeout(forecastservice.WithLocale(ctx, cfg.Locale), timeouts.GRPCRequest)
	defer cancel()
	resp, err := forecastservice.NewClient(conn).ForecastMines(callCtx, forecastservice.ForecastMinesRequest{
		GameID:   gameID.String(),
		FirstDay: firstDay,
		Days:     cfg.Days,
	})
	if err != nil {
		return forecast.Month{}, err
	}
	if resp.Cached {
		log.Printf("forecast for %s served from cache", gameID)
	}
	return resp.Month, nil
}
