// Package random reproduces the subtractive generator of the .NET
// System.Random family and provides high-entropy seed helpers.
//
// Deterministic predictions use Subtractive; NewSeed and NewSeed32 use
// crypto/rand and only exist to pick seeds or identifiers when the caller has
// none.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSeed32 generates a non-negative 32-bit seed suitable for New.
func NewSeed32() (int32, error) {
	seed, err := NewSeed()
	if err != nil {
		return 0, err
	}
	return int32(uint32(seed) >> 1), nil
}
