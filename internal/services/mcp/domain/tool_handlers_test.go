package domain

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/valleycast/internal/forecast"
	"github.com/louisbranch/valleycast/internal/random"
	"github.com/louisbranch/valleycast/internal/u64"
)

type fakeBackend struct {
	firstDay int64
	days     int
	err      error
}

func (b *fakeBackend) ForecastMines(_ context.Context, gameID u64.Value, firstDay int64, days int) (forecast.Month, error) {
	b.firstDay, b.days = firstDay, days
	if b.err != nil {
		return forecast.Month{}, b.err
	}
	return forecast.ForecastMines(gameID, firstDay, days)
}

func (b *fakeBackend) InspectSeed(ctx context.Context, seed int32, draws int) ([]int32, []float64, error) {
	if b.err != nil {
		return nil, nil, b.err
	}
	return LocalBackend{}.InspectSeed(ctx, seed, draws)
}

func TestMinesForecastHandler(t *testing.T) {
	t.Run("season of days played", func(t *testing.T) {
		backend := &fakeBackend{}
		handler := MinesForecastHandler(backend)
		_, result, err := handler(context.Background(), nil, MinesForecastInput{GameID: "123456789", DaysPlayed: 45})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if backend.firstDay != 29 || backend.days != 28 {
			t.Fatalf("window = (%d, %d), want (29, 28)", backend.firstDay, backend.days)
		}
		if result.GameID != "123456789" || len(result.Days) != 28 {
			t.Fatalf("unexpected result %+v", result)
		}
		if result.Days[0].Date != "Summer 1, Year 1" || result.Days[0].Weekday != "Monday" {
			t.Fatalf("first day = %+v", result.Days[0])
		}
	})

	t.Run("month offset clamps", func(t *testing.T) {
		backend := &fakeBackend{}
		handler := MinesForecastHandler(backend)
		if _, _, err := handler(context.Background(), nil, MinesForecastInput{GameID: "1", DaysPlayed: 45, MonthOffset: -5}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if backend.firstDay != 1 {
			t.Fatalf("first day = %d, want 1", backend.firstDay)
		}
	})

	t.Run("explicit window", func(t *testing.T) {
		backend := &fakeBackend{}
		handler := MinesForecastHandler(backend)
		_, result, err := handler(context.Background(), nil, MinesForecastInput{GameID: "1", DaysPlayed: 45, FirstDay: 3, Days: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.FirstDay != 3 || len(result.Days) != 2 {
			t.Fatalf("unexpected result %+v", result)
		}
	})

	t.Run("matches forecast library", func(t *testing.T) {
		_, result, err := MinesForecastHandler(LocalBackend{})(context.Background(), nil, MinesForecastInput{GameID: "123456789"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		month, err := forecast.ForecastMines(u64.MustParse("123456789"), 1, 28)
		if err != nil {
			t.Fatalf("ForecastMines: %v", err)
		}
		if !reflect.DeepEqual(result, minesForecastResult(month)) {
			t.Fatal("handler result differs from library forecast")
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		handler := MinesForecastHandler(&fakeBackend{})
		for name, input := range map[string]MinesForecastInput{
			"missing id":    {},
			"bad id":        {GameID: "-1"},
			"negative days": {GameID: "1", DaysPlayed: -1},
			"too long":      {GameID: "1", Days: forecast.MaxDays + 1},
		} {
			if _, _, err := handler(context.Background(), nil, input); err == nil {
				t.Fatalf("%s: expected error", name)
			}
		}
		if _, _, err := MinesForecastHandler(nil)(context.Background(), nil, MinesForecastInput{GameID: "1"}); err == nil {
			t.Fatal("expected error for nil backend")
		}
	})

	t.Run("backend error", func(t *testing.T) {
		handler := MinesForecastHandler(&fakeBackend{err: errors.New("unavailable")})
		if _, _, err := handler(context.Background(), nil, MinesForecastInput{GameID: "1"}); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestSeedInspectHandler(t *testing.T) {
	handler := SeedInspectHandler(LocalBackend{})
	_, result, err := handler(context.Background(), nil, SeedInspectInput{Seed: 0, Draws: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int32{1559595546, 1755192844, 1649316166}; !reflect.DeepEqual(result.Samples, want) {
		t.Fatalf("samples = %v, want %v", result.Samples, want)
	}
	if result.Doubles[0] != 0.7262432699679598 {
		t.Fatalf("first double = %v", result.Doubles[0])
	}

	_, result, err = handler(context.Background(), nil, SeedInspectInput{Seed: -1 << 32})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Seed != 0 || len(result.Samples) != random.DefaultInspectDraws {
		t.Fatalf("unexpected wrapped result %+v", result)
	}

	for _, draws := range []int{-2, random.MaxInspectDraws + 1} {
		if _, _, err := handler(context.Background(), nil, SeedInspectInput{Draws: draws}); err == nil {
			t.Fatalf("draws %d: expected error", draws)
		}
	}
}

func TestCalendarDateHandler(t *testing.T) {
	_, result, err := CalendarDateHandler()(context.Background(), nil, CalendarDateInput{DaysPlayed: 116})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := CalendarDateResult{
		Date:        "Spring 4, Year 2",
		Year:        2,
		Season:      "Spring",
		Day:         4,
		Weekday:     "Thursday",
		SeasonStart: 113,
	}
	if result != want {
		t.Fatalf("result = %+v, want %+v", result, want)
	}
	if _, _, err := CalendarDateHandler()(context.Background(), nil, CalendarDateInput{}); err == nil {
		t.Fatal("expected error for day zero")
	}
}
