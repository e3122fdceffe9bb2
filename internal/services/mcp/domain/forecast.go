package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/valleycast/internal/calendar"
	"github.com/louisbranch/valleycast/internal/forecast"
	"github.com/louisbranch/valleycast/internal/u64"
)

// MinesForecastInput represents the MCP tool input for a mine forecast.
type MinesForecastInput struct {
	GameID      string `json:"game_id" jsonschema:"unique game identifier from the save file (uniqueIDForThisGame)"`
	DaysPlayed  int64  `json:"days_played,omitempty" jsonschema:"current days-played counter; selects the season to forecast"`
	MonthOffset int    `json:"month_offset,omitempty" jsonschema:"seasons relative to the one containing days_played"`
	FirstDay    int64  `json:"first_day,omitempty" jsonschema:"explicit first days-played value; overrides days_played"`
	Days        int    `json:"days,omitempty" jsonschema:"number of days to forecast (default 28, max 112)"`
}

// ForecastDayResult is one forecast day.
type ForecastDayResult struct {
	DaysPlayed    int64  `json:"days_played" jsonschema:"days-played counter"`
	Date          string `json:"date" jsonschema:"calendar date, e.g. Spring 3, Year 1"`
	Weekday       string `json:"weekday" jsonschema:"day of the week"`
	MonsterLevels []int  `json:"monster_levels" jsonschema:"mine levels infested with monsters"`
	SlimeLevels   []int  `json:"slime_levels" jsonschema:"mine levels infested with slimes"`
	RainbowLevels []int  `json:"rainbow_levels" jsonschema:"mine levels lit by rainbow lights"`
}

// MinesForecastResult represents the MCP tool output for a mine forecast.
type MinesForecastResult struct {
	GameID   string              `json:"game_id" jsonschema:"unique game identifier"`
	FirstDay int64               `json:"first_day" jsonschema:"first forecast days-played value"`
	Days     []ForecastDayResult `json:"days" jsonschema:"per-day forecast"`
}

// MinesForecastTool defines the MCP tool schema for mine forecasts.
func MinesForecastTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "mines_forecast",
		Description: "Predicts infested mine levels and rainbow-lit levels for a run of days. Defaults to the season containing days_played.",
	}
}

// MinesForecastHandler executes a mine forecast.
func MinesForecastHandler(backend Backend) mcp.ToolHandlerFor[MinesForecastInput, MinesForecastResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MinesForecastInput) (*mcp.CallToolResult, MinesForecastResult, error) {
		if backend == nil {
			return nil, MinesForecastResult{}, errors.New("forecast backend is not configured")
		}
		gameID, err := parseGameID(input.GameID)
		if err != nil {
			return nil, MinesForecastResult{}, err
		}
		if input.DaysPlayed < 0 {
			return nil, MinesForecastResult{}, fmt.Errorf("days_played must not be negative")
		}

		firstDay := input.FirstDay
		if firstDay == 0 {
			firstDay = forecast.MonthStartOffset(input.DaysPlayed, input.MonthOffset)
		}
		days := input.Days
		if days == 0 {
			days = calendar.DaysPerSeason
		}
		if err := forecast.ValidateWindow(firstDay, days); err != nil {
			return nil, MinesForecastResult{}, err
		}

		month, err := backend.ForecastMines(ctx, gameID, firstDay, days)
		if err != nil {
			return nil, MinesForecastResult{}, err
		}
		return nil, minesForecastResult(month), nil
	}
}

func minesForecastResult(month forecast.Month) MinesForecastResult {
	result := MinesForecastResult{
		GameID:   month.GameID.String(),
		FirstDay: month.FirstDay,
		Days:     make([]ForecastDayResult, 0, len(month.Days)),
	}
	for _, day := range month.Days {
		result.Days = append(result.Days, ForecastDayResult{
			DaysPlayed:    day.DaysPlayed,
			Date:          day.Date.String(),
			Weekday:       day.Date.Weekday().String(),
			MonsterLevels: nonNil(day.MonsterLevels),
			SlimeLevels:   nonNil(day.SlimeLevels),
			RainbowLevels: nonNil(day.RainbowLevels),
		})
	}
	return result
}

func nonNil(levels []int) []int {
	if levels == nil {
		return []int{}
	}
	return levels
}

func parseGameID(value string) (u64.Value, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return u64.Value{}, errors.New("game_id is required")
	}
	gameID, err := u64.Parse(value)
	if err != nil {
		return u64.Value{}, fmt.Errorf("game_id %q: %w", value, err)
	}
	return gameID, nil
}
