// Package forecast predicts per-day mine conditions by replaying the
// simulation's reseeded random draws.
//
// Each check reseeds a fresh generator from values the simulation itself
// would use: the days-played counter, the mine level and half the game's
// unique identifier. Results are only meaningful when every draw lines up
// with the simulation, so the order of draws here is load-bearing.
package forecast

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/louisbranch/valleycast/internal/calendar"
	"github.com/louisbranch/valleycast/internal/random"
	"github.com/louisbranch/valleycast/internal/u64"
)

const (
	// FirstLevel is the shallowest predicted mine level.
	FirstLevel = 1
	// LastLevel is the deepest predicted mine level, the floor above the bottom.
	LastLevel = 119
	// ElevatorInterval marks levels reached by elevator; they are never
	// infested and never checked.
	ElevatorInterval = 5

	// MaxDays bounds a single forecast to one in-game year.
	MaxDays = calendar.DaysPerYear

	infestationChance   = 0.044
	monsterChance       = 0.5
	mushroomFloorChance = 0.3
	rainbowChance       = 0.035
	rainbowMinLevel     = 80
	mushroomMinLevel    = 2
	infestationCycle    = 40
	infestationLow      = 5
	infestationHigh     = 30
	quarryLevel         = 19
)

var (
	// ErrInvalidFirstDay indicates a days-played counter below one.
	ErrInvalidFirstDay = errors.New("first day must be at least 1")
	// ErrInvalidDayCount indicates a forecast length outside 1..MaxDays.
	ErrInvalidDayCount = fmt.Errorf("day count must be between 1 and %d", MaxDays)
)

// Infestation is the outcome of the per-level infestation check.
type Infestation int

const (
	None Infestation = iota
	Monster
	Slime
)

func (i Infestation) String() string {
	switch i {
	case None:
		return "none"
	case Monster:
		return "monster"
	case Slime:
		return "slime"
	default:
		return fmt.Sprintf("Infestation(%d)", int(i))
	}
}

// Day is the forecast for one days-played value.
type Day struct {
	DaysPlayed    int64         `json:"days_played"`
	Date          calendar.Date `json:"-"`
	MonsterLevels []int         `json:"monster_levels"`
	SlimeLevels   []int         `json:"slime_levels"`
	RainbowLevels []int         `json:"rainbow_levels"`
}

// UnmarshalJSON decodes a day and restores its calendar date.
func (d *Day) UnmarshalJSON(data []byte) error {
	type plain Day
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = Day(p)
	d.Date = calendar.FromDaysPlayed(d.DaysPlayed)
	return nil
}

// Month is a run of consecutive forecast days for one game.
type Month struct {
	GameID   u64.Value `json:"game_id"`
	FirstDay int64     `json:"first_day"`
	Days     []Day     `json:"days"`
}

// halfID is floor(gameID/2) computed exactly in limb arithmetic.
func halfID(gameID u64.Value) u64.Value {
	return gameID.Div(2, 1)
}

// InfestationSeed derives the seed of the infestation check:
// day + level + floor(gameID/2), reduced to 32 bits.
func InfestationSeed(day, level int64, gameID u64.Value) int32 {
	return u64.FromInt64(day).Add(u64.FromInt64(level)).Add(halfID(gameID)).Int32()
}

// MushroomSeed derives the seed of the level-lighting check:
// day*level + 4*level + floor(gameID/2), reduced to 32 bits.
func MushroomSeed(day, level int64, gameID u64.Value) int32 {
	return u64.FromInt64(day*level + 4*level).Add(halfID(gameID)).Int32()
}

// InfestationEligible reports whether a level can roll an infestation.
func InfestationEligible(level int) bool {
	if level%ElevatorInterval == 0 {
		return false
	}
	m := level % infestationCycle
	return m > infestationLow && m < infestationHigh && m != quarryLevel
}

// ClassifyInfestation replays the infestation check. A second draw is only
// taken when the first one lands under the infestation chance.
func ClassifyInfestation(seed int32) Infestation {
	rng := random.New(seed)
	if rng.NextDouble() >= infestationChance {
		return None
	}
	if rng.NextDouble() < monsterChance {
		return Monster
	}
	return Slime
}

// HasRainbowLights replays the level-lighting draws and reports whether the
// level is lit by rainbow lights.
func HasRainbowLights(seed int32, level int) bool {
	rng := random.New(seed)
	if rng.NextDouble() < mushroomFloorChance && level > mushroomMinLevel {
		rng.NextDouble()
	}
	// Regular lighting check, result unused.
	rng.NextDouble()
	return rng.NextDouble() < rainbowChance && level > rainbowMinLevel
}

// ForecastDay scans every non-elevator level for one day. The lighting check
// only runs on levels that were not infested.
func ForecastDay(gameID u64.Value, daysPlayed int64) Day {
	day := Day{
		DaysPlayed:    daysPlayed,
		Date:          calendar.FromDaysPlayed(daysPlayed),
		MonsterLevels: []int{},
		SlimeLevels:   []int{},
		RainbowLevels: []int{},
	}
	for level := FirstLevel; level <= LastLevel; level++ {
		if level%ElevatorInterval == 0 {
			continue
		}
		if InfestationEligible(level) {
			switch ClassifyInfestation(InfestationSeed(daysPlayed, int64(level), gameID)) {
			case Monster:
				day.MonsterLevels = append(day.MonsterLevels, level)
				continue
			case Slime:
				day.SlimeLevels = append(day.SlimeLevels, level)
				continue
			}
		}
		if HasRainbowLights(MushroomSeed(daysPlayed, int64(level), gameID), level) {
			day.RainbowLevels = append(day.RainbowLevels, level)
		}
	}
	return day
}

// ValidateWindow checks a forecast window without computing it.
func ValidateWindow(firstDay int64, days int) error {
	if firstDay < 1 {
		return fmt.Errorf("forecast from day %d: %w", firstDay, ErrInvalidFirstDay)
	}
	if days < 1 || days > MaxDays {
		return fmt.Errorf("forecast %d days: %w", days, ErrInvalidDayCount)
	}
	return nil
}

// ForecastMines forecasts days consecutive days starting at firstDay.
func ForecastMines(gameID u64.Value, firstDay int64, days int) (Month, error) {
	if err := ValidateWindow(firstDay, days); err != nil {
		return Month{}, err
	}
	month := Month{GameID: gameID, FirstDay: firstDay, Days: make([]Day, 0, days)}
	for i := 0; i < days; i++ {
		month.Days = append(month.Days, ForecastDay(gameID, firstDay+int64(i)))
	}
	return month, nil
}

// MonthStart returns the first day of the season containing daysPlayed.
func MonthStart(daysPlayed int64) int64 {
	return calendar.SeasonStart(daysPlayed)
}

// MonthStartOffset returns the first day of the season offset seasons away
// from the one containing daysPlayed, clamped to day one.
func MonthStartOffset(daysPlayed int64, offset int) int64 {
	start := MonthStart(daysPlayed) + int64(offset)*calendar.DaysPerSeason
	if start < 1 {
		return 1
	}
	return start
}
