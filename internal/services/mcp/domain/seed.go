package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/valleycast/internal/calendar"
	"github.com/louisbranch/valleycast/internal/forecast"
	"github.com/louisbranch/valleycast/internal/random"
)

// SeedInspectInput represents the MCP tool input for inspecting a seed.
type SeedInspectInput struct {
	Seed  int64 `json:"seed" jsonschema:"engine seed; values outside the 32-bit range wrap"`
	Draws int   `json:"draws,omitempty" jsonschema:"number of draws to return (default 8, max 64)"`
}

// SeedInspectResult represents the MCP tool output for inspecting a seed.
type SeedInspectResult struct {
	Seed    int32     `json:"seed" jsonschema:"effective 32-bit seed"`
	Samples []int32   `json:"samples" jsonschema:"raw internal samples in [0, 2147483647)"`
	Doubles []float64 `json:"doubles" jsonschema:"NextDouble values in [0, 1)"`
}

// SeedInspectTool defines the MCP tool schema for inspecting a seed.
func SeedInspectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "seed_inspect",
		Description: "Returns the first raw draws of the subtractive generator for a seed, for checking parity with the game.",
	}
}

// SeedInspectHandler executes a seed inspection.
func SeedInspectHandler(backend Backend) mcp.ToolHandlerFor[SeedInspectInput, SeedInspectResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SeedInspectInput) (*mcp.CallToolResult, SeedInspectResult, error) {
		if backend == nil {
			return nil, SeedInspectResult{}, errors.New("forecast backend is not configured")
		}
		draws := input.Draws
		if draws == 0 {
			draws = random.DefaultInspectDraws
		}
		if draws < 1 || draws > random.MaxInspectDraws {
			return nil, SeedInspectResult{}, fmt.Errorf("draws must be between 1 and %d", random.MaxInspectDraws)
		}
		seed := int32(input.Seed)
		samples, doubles, err := backend.InspectSeed(ctx, seed, draws)
		if err != nil {
			return nil, SeedInspectResult{}, err
		}
		return nil, SeedInspectResult{Seed: seed, Samples: samples, Doubles: doubles}, nil
	}
}

// CalendarDateInput represents the MCP tool input for calendar conversion.
type CalendarDateInput struct {
	DaysPlayed int64 `json:"days_played" jsonschema:"days-played counter, starting at 1"`
}

// CalendarDateResult represents the MCP tool output for calendar conversion.
type CalendarDateResult struct {
	Date        string `json:"date" jsonschema:"calendar date"`
	Year        int    `json:"year" jsonschema:"year, starting at 1"`
	Season      string `json:"season" jsonschema:"season name"`
	Day         int    `json:"day" jsonschema:"day of the season, 1 to 28"`
	Weekday     string `json:"weekday" jsonschema:"day of the week"`
	SeasonStart int64  `json:"season_start" jsonschema:"days-played value of the first day of this season"`
}

// CalendarDateTool defines the MCP tool schema for calendar conversion.
func CalendarDateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calendar_date",
		Description: "Converts a days-played counter to its in-game date.",
	}
}

// CalendarDateHandler converts a days-played counter.
func CalendarDateHandler() mcp.ToolHandlerFor[CalendarDateInput, CalendarDateResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CalendarDateInput) (*mcp.CallToolResult, CalendarDateResult, error) {
		if input.DaysPlayed < 1 {
			return nil, CalendarDateResult{}, errors.New("days_played must be at least 1")
		}
		date := calendar.FromDaysPlayed(input.DaysPlayed)
		return nil, CalendarDateResult{
			Date:        date.String(),
			Year:        date.Year,
			Season:      date.Season.String(),
			Day:         date.Day,
			Weekday:     date.Weekday().String(),
			SeasonStart: forecast.MonthStart(input.DaysPlayed),
		}, nil
	}
}
