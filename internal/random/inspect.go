package random

import "fmt"

const (
	// DefaultInspectDraws is the draw count Inspect uses when asked for zero.
	DefaultInspectDraws = 8
	// MaxInspectDraws bounds a single inspection.
	MaxInspectDraws = 64
)

// ErrInvalidDrawCount indicates an inspection outside 1..MaxInspectDraws.
var ErrInvalidDrawCount = fmt.Errorf("draw count must be between 1 and %d", MaxInspectDraws)

// Inspection lists the first draws of a freshly seeded engine.
type Inspection struct {
	Seed    int32
	Samples []int32
	Doubles []float64
}

// Inspect seeds two engines and records the first draws of each, raw
// internal samples from one and NextDouble values from the other. A zero
// draw count selects DefaultInspectDraws.
func Inspect(seed int32, draws int) (Inspection, error) {
	if draws == 0 {
		draws = DefaultInspectDraws
	}
	if draws < 1 || draws > MaxInspectDraws {
		return Inspection{}, fmt.Errorf("%w: got %d", ErrInvalidDrawCount, draws)
	}
	out := Inspection{
		Seed:    seed,
		Samples: make([]int32, draws),
		Doubles: make([]float64, draws),
	}
	samples, doubles := New(seed), New(seed)
	for i := 0; i < draws; i++ {
		out.Samples[i] = samples.InternalSample()
		out.Doubles[i] = doubles.NextDouble()
	}
	return out, nil
}
