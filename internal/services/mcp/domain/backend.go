package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/valleycast/internal/forecast"
	"github.com/louisbranch/valleycast/internal/platform/timeouts"
	"github.com/louisbranch/valleycast/internal/random"
	forecastservice "github.com/louisbranch/valleycast/internal/services/forecast/api/grpc/forecast"
	"github.com/louisbranch/valleycast/internal/u64"
)

// Backend computes forecasts and raw draws for tool handlers.
type Backend interface {
	ForecastMines(ctx context.Context, gameID u64.Value, firstDay int64, days int) (forecast.Month, error)
	InspectSeed(ctx context.Context, seed int32, draws int) ([]int32, []float64, error)
}

// LocalBackend computes everything in process.
type LocalBackend struct{}

// ForecastMines runs the forecast library directly.
func (LocalBackend) ForecastMines(_ context.Context, gameID u64.Value, firstDay int64, days int) (forecast.Month, error) {
	return forecast.ForecastMines(gameID, firstDay, days)
}

// InspectSeed draws from fresh engines through random.Inspect.
func (LocalBackend) InspectSeed(_ context.Context, seed int32, draws int) ([]int32, []float64, error) {
	inspection, err := random.Inspect(seed, draws)
	if err != nil {
		return nil, nil, err
	}
	return inspection.Samples, inspection.Doubles, nil
}

// RemoteBackend delegates to a running forecast service, which also caches.
type RemoteBackend struct {
	Client *forecastservice.Client
}

// ForecastMines calls the forecast service.
func (b RemoteBackend) ForecastMines(ctx context.Context, gameID u64.Value, firstDay int64, days int) (forecast.Month, error) {
	if b.Client == nil {
		return forecast.Month{}, fmt.Errorf("forecast client is not configured")
	}
	callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	defer cancel()
	resp, err := b.Client.ForecastMines(callCtx, forecastservice.ForecastMinesRequest{
		GameID:   gameID.String(),
		FirstDay: firstDay,
		Days:     days,
	})
	if err != nil {
		return forecast.Month{}, fmt.Errorf("forecast mines failed: %w", err)
	}
	return resp.Month, nil
}

// InspectSeed calls the forecast service.
func (b RemoteBackend) InspectSeed(ctx context.Context, seed int32, draws int) ([]int32, []float64, error) {
	if b.Client == nil {
		return nil, nil, fmt.Errorf("forecast client is not configured")
	}
	callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	defer cancel()
	resp, err := b.Client.InspectSeed(callCtx, forecastservice.InspectSeedRequest{Seed: int64(seed), Draws: draws})
	if err != nil {
		return nil, nil, fmt.Errorf("inspect seed failed: %w", err)
	}
	return resp.Samples, resp.Doubles, nil
}
