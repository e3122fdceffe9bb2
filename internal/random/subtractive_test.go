package random

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestInternalSampleGolden(t *testing.T) {
	tests := []struct {
		name string
		seed int32
		want []int32
	}{
		{name: "zero", seed: 0, want: []int32{1559595546, 1755192844, 1649316166, 1198642031, 442452829}},
		{name: "one", seed: 1, want: []int32{534011718, 237820880, 1002897798, 1657007234, 1412011072}},
		{name: "negative one", seed: -1, want: []int32{534011718, 237820880, 1002897798, 1657007234, 1412011072}},
		{name: "forty two", seed: 42, want: []int32{1434747710, 302596119, 269548474, 1122627734, 361709742}},
		{name: "min int32", seed: math.MinInt32, want: []int32{1559595546, 1755192844, 1649316172, 1198642031, 442452829}},
		{name: "max int32", seed: math.MaxInt32, want: []int32{1559595546, 1755192844, 1649316172, 1198642031, 442452829}},
		{name: "large", seed: 123456789, want: []int32{1091672793, 381850644, 1335622286, 865414785, 1968738143}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := New(tt.seed)
			for i, want := range tt.want {
				if got := rng.InternalSample(); got != want {
					t.Fatalf("draw %d = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestThousandthSample(t *testing.T) {
	rng := New(0)
	var got int32
	for i := 0; i < 1000; i++ {
		got = rng.InternalSample()
	}
	if got != 1297201354 {
		t.Fatalf("1000th draw = %d, want 1297201354", got)
	}
}

func TestNextDoubleGolden(t *testing.T) {
	if got := New(0).NextDouble(); got != 0.7262432699679598 {
		t.Fatalf("NextDouble() = %v, want 0.7262432699679598", got)
	}
}

func TestDeterminism(t *testing.T) {
	seeds := []int32{0, 1, -7, 99999, math.MaxInt32, math.MinInt32}
	for _, seed := range seeds {
		a, b := New(seed), New(seed)
		for i := 0; i < 1000; i++ {
			x, y := a.NextDouble(), b.NextDouble()
			if x != y {
				t.Fatalf("seed %d draw %d: %v != %v", seed, i, x, y)
			}
			if x < 0 || x >= 1 {
				t.Fatalf("seed %d draw %d: %v outside [0, 1)", seed, i, x)
			}
		}
	}
}

func TestNextNGolden(t *testing.T) {
	rng := New(42)
	want := []int32{66, 14, 12, 52, 16, 26, 72, 51, 17, 76}
	for i, w := range want {
		got, err := rng.NextN(100)
		if err != nil {
			t.Fatalf("NextN error: %v", err)
		}
		if got != w {
			t.Fatalf("draw %d = %d, want %d", i, got, w)
		}
	}
}

func TestNextRangeGolden(t *testing.T) {
	tests := []struct {
		name     string
		min, max int32
		want     []int32
	}{
		{name: "small", min: -50, max: 50, want: []int32{-12, 37, 16, -45, -14, 17, -46, 45, 34, 35}},
		{name: "full width", min: math.MinInt32, max: math.MaxInt32, want: []int32{822959690, -1419354886, -786909591, -91104739, 1811545598, -964263067}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := New(7)
			for i, w := range tt.want {
				got, err := rng.NextRange(tt.min, tt.max)
				if err != nil {
					t.Fatalf("NextRange error: %v", err)
				}
				if got != w {
					t.Fatalf("draw %d = %d, want %d", i, got, w)
				}
			}
		})
	}
}

func TestNextRangeBounds(t *testing.T) {
	picker := rand.New(rand.NewSource(11))
	for i := 0; i < 10000; i++ {
		a := int32(picker.Uint32())
		b := int32(picker.Uint32())
		if a > b {
			a, b = b, a
		}
		rng := New(int32(picker.Uint32()))
		got, err := rng.NextRange(a, b)
		if err != nil {
			t.Fatalf("NextRange(%d, %d) error: %v", a, b, err)
		}
		if a == b {
			if got != a {
				t.Fatalf("NextRange(%d, %d) = %d, want %d", a, b, got, a)
			}
			continue
		}
		if got < a || got >= b {
			t.Fatalf("NextRange(%d, %d) = %d out of range", a, b, got)
		}
	}
}

func TestNextNZeroAndErrors(t *testing.T) {
	rng := New(3)
	got, err := rng.NextN(0)
	if err != nil || got != 0 {
		t.Fatalf("NextN(0) = %d, %v", got, err)
	}
	if _, err := rng.NextN(-1); !errors.Is(err, ErrNegativeMax) {
		t.Fatalf("NextN(-1) error = %v, want ErrNegativeMax", err)
	}
	if _, err := rng.NextRange(5, 4); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("NextRange(5, 4) error = %v, want ErrInvalidRange", err)
	}
	got, err = rng.NextRange(9, 9)
	if err != nil || got != 9 {
		t.Fatalf("NextRange(9, 9) = %d, %v", got, err)
	}
}

func TestNextStaysBelowModulus(t *testing.T) {
	rng := New(-123)
	for i := 0; i < 10000; i++ {
		if got := rng.Next(); got < 0 || got >= math.MaxInt32 {
			t.Fatalf("Next() = %d out of range", got)
		}
	}
}

func TestToInt32(t *testing.T) {
	tests := []struct {
		in   float64
		want int32
	}{
		{in: 0, want: 0},
		{in: 61728405, want: 61728405},
		{in: 12.75, want: 12},
		{in: -12.75, want: -12},
		{in: 2147483648, want: math.MinInt32},
		{in: 4294967296 + 5, want: 5},
		{in: -2147483649, want: math.MaxInt32},
		{in: math.Inf(1), want: 0},
		{in: math.NaN(), want: 0},
	}
	for _, tt := range tests {
		if got := ToInt32(tt.in); got != tt.want {
			t.Fatalf("ToInt32(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewFromFloatMatchesNew(t *testing.T) {
	a, b := NewFromFloat(61728405.9), New(61728405)
	for i := 0; i < 10; i++ {
		if x, y := a.InternalSample(), b.InternalSample(); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestNewSeed32NonNegative(t *testing.T) {
	for i := 0; i < 20; i++ {
		seed, err := NewSeed32()
		if err != nil {
			t.Fatalf("NewSeed32 error: %v", err)
		}
		if seed < 0 {
			t.Fatalf("NewSeed32() = %d, want non-negative", seed)
		}
	}
}

func BenchmarkInternalSample(b *testing.B) {
	rng := New(0)
	for i := 0; i < b.N; i++ {
		rng.InternalSample()
	}
}
