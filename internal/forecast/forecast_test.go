package forecast

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/valleycast/internal/calendar"
	"github.com/louisbranch/valleycast/internal/random"
	"github.com/louisbranch/valleycast/internal/u64"
)

var testGameID = u64.MustParse("123456789")

func TestInfestationSeedEndToEnd(t *testing.T) {
	seed := InfestationSeed(1, 10, testGameID)
	if seed != 61728405 {
		t.Fatalf("InfestationSeed(1, 10, 123456789) = %d, want 61728405", seed)
	}
	rng := random.New(seed)
	want := []float64{0.10276231314184252, 0.07846469575467738, 0.5343590413845885}
	for i, w := range want {
		if got := rng.NextDouble(); got != w {
			t.Fatalf("draw %d = %v, want %v", i, got, w)
		}
	}
	if got := ClassifyInfestation(seed); got != None {
		t.Fatalf("ClassifyInfestation(%d) = %v, want none", seed, got)
	}
}

func TestSeedsUseExactHalving(t *testing.T) {
	// 2^53+1 is not representable as a float; halving must stay exact.
	id := u64.MustParse("9007199254740993")
	half := u64.MustParse("4503599627370496")
	want := u64.FromInt64(3).Add(half).Int32()
	if got := InfestationSeed(1, 2, id); got != want {
		t.Fatalf("InfestationSeed = %d, want %d", got, want)
	}
	want = u64.FromInt64(3*7 + 4*7).Add(half).Int32()
	if got := MushroomSeed(3, 7, id); got != want {
		t.Fatalf("MushroomSeed = %d, want %d", got, want)
	}
}

func TestInfestationEligible(t *testing.T) {
	tests := []struct {
		level int
		want  bool
	}{
		{level: 1, want: false},
		{level: 5, want: false},
		{level: 6, want: true},
		{level: 19, want: false},
		{level: 29, want: true},
		{level: 30, want: false},
		{level: 46, want: true},
		{level: 59, want: false},
		{level: 69, want: true},
		{level: 85, want: false},
		{level: 86, want: true},
		{level: 119, want: false},
	}
	for _, tt := range tests {
		if got := InfestationEligible(tt.level); got != tt.want {
			t.Fatalf("InfestationEligible(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestForecastMinesMonth(t *testing.T) {
	type row struct {
		monster, slime, rainbow []int
	}
	want := []row{
		{[]int{96}, []int{6, 29}, []int{}},
		{[]int{}, []int{28}, []int{104, 111}},
		{[]int{94}, []int{27}, []int{101}},
		{[]int{93}, []int{26}, []int{}},
		{[]int{92}, []int{69}, []int{114}},
		{[]int{91}, []int{24, 68}, []int{81, 82, 83}},
		{[]int{}, []int{23, 67}, []int{83}},
		{[]int{89}, []int{22, 66}, []int{101, 119}},
		{[]int{88, 109}, []int{21}, []int{94, 97, 117}},
		{[]int{87, 108}, []int{64}, []int{102, 116}},
		{[]int{86, 107}, []int{63}, []int{}},
		{[]int{106}, []int{18, 62}, []int{88}},
		{[]int{}, []int{17, 61}, []int{84, 101, 118}},
		{[]int{104}, []int{16}, []int{94, 112}},
		{[]int{103}, []int{}, []int{111}},
		{[]int{102}, []int{14, 58}, []int{}},
		{[]int{101}, []int{13, 57}, []int{96}},
		{[]int{}, []int{12, 56}, []int{}},
		{[]int{}, []int{11}, []int{}},
		{[]int{98}, []int{54}, []int{84}},
		{[]int{97}, []int{9, 53}, []int{}},
		{[]int{96}, []int{8, 52}, []int{}},
		{[]int{}, []int{7, 51}, []int{}},
		{[]int{94}, []int{6}, []int{86, 93, 107, 114}},
		{[]int{93}, []int{49}, []int{}},
		{[]int{92}, []int{48}, []int{93}},
		{[]int{91}, []int{47}, []int{84, 87, 93, 117}},
		{[]int{69}, []int{46}, []int{111, 112}},
	}

	month, err := ForecastMines(testGameID, 1, calendar.DaysPerSeason)
	if err != nil {
		t.Fatalf("ForecastMines returned error: %v", err)
	}
	if len(month.Days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(month.Days))
	}
	for i, day := range month.Days {
		if day.DaysPlayed != int64(i+1) {
			t.Fatalf("day %d has DaysPlayed %d", i, day.DaysPlayed)
		}
		if !reflect.DeepEqual(day.MonsterLevels, want[i].monster) {
			t.Fatalf("day %d monster levels = %v, want %v", i+1, day.MonsterLevels, want[i].monster)
		}
		if !reflect.DeepEqual(day.SlimeLevels, want[i].slime) {
			t.Fatalf("day %d slime levels = %v, want %v", i+1, day.SlimeLevels, want[i].slime)
		}
		if !reflect.DeepEqual(day.RainbowLevels, want[i].rainbow) {
			t.Fatalf("day %d rainbow levels = %v, want %v", i+1, day.RainbowLevels, want[i].rainbow)
		}
	}
}

func TestForecastDayInvariants(t *testing.T) {
	for d := int64(1); d <= 56; d++ {
		day := ForecastDay(testGameID, d)
		seen := map[int]bool{}
		for _, levels := range [][]int{day.MonsterLevels, day.SlimeLevels, day.RainbowLevels} {
			for _, level := range levels {
				if level%ElevatorInterval == 0 {
					t.Fatalf("day %d lists elevator level %d", d, level)
				}
				if seen[level] {
					t.Fatalf("day %d lists level %d twice", d, level)
				}
				seen[level] = true
			}
		}
		for _, level := range day.RainbowLevels {
			if level <= rainbowMinLevel {
				t.Fatalf("day %d lists shallow rainbow level %d", d, level)
			}
		}
		for _, level := range append(append([]int{}, day.MonsterLevels...), day.SlimeLevels...) {
			if !InfestationEligible(level) {
				t.Fatalf("day %d infests ineligible level %d", d, level)
			}
		}
	}
}

func TestForecastMinesErrors(t *testing.T) {
	if _, err := ForecastMines(testGameID, 0, 28); !errors.Is(err, ErrInvalidFirstDay) {
		t.Fatalf("first day 0 error = %v, want ErrInvalidFirstDay", err)
	}
	if _, err := ForecastMines(testGameID, 1, 0); !errors.Is(err, ErrInvalidDayCount) {
		t.Fatalf("0 days error = %v, want ErrInvalidDayCount", err)
	}
	if _, err := ForecastMines(testGameID, 1, MaxDays+1); !errors.Is(err, ErrInvalidDayCount) {
		t.Fatalf("%d days error = %v, want ErrInvalidDayCount", MaxDays+1, err)
	}
}

func TestMonthStartOffset(t *testing.T) {
	tests := []struct {
		day    int64
		offset int
		want   int64
	}{
		{day: 40, offset: 0, want: 29},
		{day: 40, offset: 1, want: 57},
		{day: 40, offset: -1, want: 1},
		{day: 40, offset: -5, want: 1},
	}
	for _, tt := range tests {
		if got := MonthStartOffset(tt.day, tt.offset); got != tt.want {
			t.Fatalf("MonthStartOffset(%d, %d) = %d, want %d", tt.day, tt.offset, got, tt.want)
		}
	}
}

func BenchmarkForecastMonth(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ForecastMines(testGameID, 1, calendar.DaysPerSeason); err != nil {
			b.Fatal(err)
		}
	}
}

func TestMonthJSONRoundTrip(t *testing.T) {
	month, err := ForecastMines(u64.MustParse("18446744073709551615"), 110, 5)
	if err != nil {
		t.Fatalf("ForecastMines returned error: %v", err)
	}
	data, err := json.Marshal(month)
	if err != nil {
		t.Fatalf("marshal month: %v", err)
	}
	var got Month
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal month: %v", err)
	}
	if !reflect.DeepEqual(got, month) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, month)
	}
	if got.Days[3].Date != (calendar.Date{Year: 2, Season: calendar.Spring, Day: 1}) {
		t.Fatalf("restored date = %+v", got.Days[3].Date)
	}
}
