package random

import (
	"errors"
	"fmt"
	"math"
)

const (
	// mbig is the modulus of the generator, 2^31-1.
	mbig = math.MaxInt32
	// mseed is the seeding constant of the lagged Fibonacci table.
	mseed = 161803398

	tableSize   = 56
	shortLag    = 21
	scrambleLag = 30
	scramblings = 4
)

var (
	// ErrNegativeMax indicates NextN was asked for a negative bound.
	ErrNegativeMax = errors.New("max must be non-negative")
	// ErrInvalidRange indicates NextRange was given min greater than max.
	ErrInvalidRange = errors.New("min must not exceed max")
)

// Subtractive is the subtractive lagged Fibonacci generator used by the .NET
// System.Random family. Given the same seed it produces the same sequence as
// that implementation, bit for bit.
//
// A Subtractive is owned by a single caller and is not safe for concurrent
// use.
type Subtractive struct {
	inext  int
	inextp int
	// Slot 0 is never used.
	table [tableSize]int32
}

// New seeds a generator.
func New(seed int32) *Subtractive {
	s := &Subtractive{}
	s.seed(seed)
	return s
}

// NewFromFloat seeds a generator from a float seed, reduced with ToInt32.
func NewFromFloat(seed float64) *Subtractive {
	return New(ToInt32(seed))
}

// ToInt32 truncates f toward zero and wraps it into the signed 32-bit range
// with two's-complement arithmetic. NaN and infinities reduce to zero.
func ToInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	t := math.Mod(math.Trunc(f), 1<<32)
	if t < 0 {
		t += 1 << 32
	}
	return int32(uint32(t))
}

func (s *Subtractive) seed(seed int32) {
	var subtraction int32
	switch {
	case seed == math.MinInt32:
		subtraction = math.MaxInt32
	case seed < 0:
		subtraction = -seed
	default:
		subtraction = seed
	}

	mj := mseed - subtraction
	s.table[tableSize-1] = mj
	mk := int32(1)
	for i := 1; i < tableSize-1; i++ {
		ii := (shortLag * i) % (tableSize - 1)
		s.table[ii] = mk
		mk = mj - mk
		if mk < 0 {
			mk += mbig
		}
		mj = s.table[ii]
	}

	for k := 0; k < scramblings; k++ {
		for i := 1; i < tableSize; i++ {
			s.table[i] -= s.table[1+(i+scrambleLag)%(tableSize-1)]
			if s.table[i] < 0 {
				s.table[i] += mbig
			}
		}
	}

	s.inext = 0
	s.inextp = shortLag
}

// InternalSample advances the generator and returns the raw draw in
// [0, 2^31-1).
func (s *Subtractive) InternalSample() int32 {
	next := s.inext + 1
	if next >= tableSize {
		next = 1
	}
	nextp := s.inextp + 1
	if nextp >= tableSize {
		nextp = 1
	}

	ret := s.table[next] - s.table[nextp]
	if ret == mbig {
		ret--
	}
	if ret < 0 {
		ret += mbig
	}

	s.table[next] = ret
	s.inext = next
	s.inextp = nextp
	return ret
}

// Sample returns a float in [0, 1). It multiplies by the reciprocal of the
// modulus rather than dividing, which is what keeps the low bits identical to
// the reference generator.
func (s *Subtractive) Sample() float64 {
	return float64(s.InternalSample()) * (1.0 / mbig)
}

// NextDouble is Sample under its public name.
func (s *Subtractive) NextDouble() float64 {
	return s.Sample()
}

// Next returns a non-negative draw in [0, 2^31-1).
func (s *Subtractive) Next() int32 {
	return s.InternalSample()
}

// NextN returns a draw in [0, max). A max of zero always yields zero.
func (s *Subtractive) NextN(max int32) (int32, error) {
	if max < 0 {
		return 0, fmt.Errorf("next %d: %w", max, ErrNegativeMax)
	}
	return int32(s.Sample() * float64(max)), nil
}

// NextRange returns a draw in [min, max). Equal bounds always yield min.
// Spans wider than 2^31-1 draw twice per value.
func (s *Subtractive) NextRange(min, max int32) (int32, error) {
	if min > max {
		return 0, fmt.Errorf("next range [%d, %d): %w", min, max, ErrInvalidRange)
	}
	span := int64(max) - int64(min)
	if span <= math.MaxInt32 {
		return int32(s.Sample()*float64(span)) + min, nil
	}
	return int32(int64(s.sampleForLargeRange()*float64(span)) + int64(min)), nil
}

// sampleForLargeRange widens the 31-bit draw to a full 32-bit spread using a
// second draw as the sign.
func (s *Subtractive) sampleForLargeRange() float64 {
	result := s.InternalSample()
	if s.InternalSample()%2 == 0 {
		result = -result
	}
	d := float64(result)
	d += math.MaxInt32 - 1
	d /= 2*math.MaxInt32 - 1
	return d
}
