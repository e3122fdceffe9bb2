// Package u64 implements an exact unsigned 64-bit integer held as two 32-bit
// limbs.
//
// Every operation normalizes its limbs explicitly instead of leaning on native
// uint64 wraparound, so results match hosts whose numerics are float-backed.
// Values are immutable: each operation returns a new Value.
package u64

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	limbBase = int64(1) << 32

	// ScalarLimit is the exclusive upper bound for the scalar passed to Mul
	// and Div. Larger scalars are a precondition violation: the result is
	// numerically wrong but no error is raised.
	ScalarLimit = 1 << 20

	// PaddedWidth is the length of the string returned by Padded.
	PaddedWidth = 20

	directDigits = 15
	chunkDigits  = 9
)

// ErrSyntax indicates a decimal string contained something other than digits.
var ErrSyntax = errors.New("invalid decimal digits")

// Zero is the zero value.
var Zero = Value{}

// Value is hi*2^32 + lo. The remainder is a side output of Div and is zero
// for values produced by any other operation.
type Value struct {
	hi  uint32
	lo  uint32
	rem uint32
}

// FromLimbs normalizes a limb pair into a Value.
//
// lo is folded into hi by floor division (carry when lo >= 2^32, borrow when
// lo < 0) and hi is then reduced modulo 2^32 in either direction, which is
// unsigned 64-bit wraparound.
func FromLimbs(hi, lo int64) Value {
	carry := floorDiv(lo, limbBase)
	lo -= carry * limbBase
	hi = floorMod(floorMod(hi, limbBase)+floorMod(carry, limbBase), limbBase)
	return Value{hi: uint32(hi), lo: uint32(lo)}
}

// FromInt64 builds a Value from a small number held entirely in the low limb.
// Negative numbers wrap.
func FromInt64(v int64) Value {
	return FromLimbs(0, v)
}

// FromUint32 builds a Value from a single limb.
func FromUint32(v uint32) Value {
	return Value{lo: v}
}

// FromUint64 splits a native uint64 into limbs.
func FromUint64(v uint64) Value {
	return Value{hi: uint32(v >> 32), lo: uint32(v)}
}

// FromFloat64 builds a Value from a float that already holds an exact
// integer. Fractions are truncated toward zero; NaN and infinities yield zero.
func FromFloat64(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero
	}
	t := math.Trunc(f)
	base := float64(limbBase)
	hi := math.Floor(t / base)
	lo := t - hi*base
	return FromLimbs(int64(math.Mod(hi, base)), int64(lo))
}

// Parse reads a decimal digit string of any length. Inputs past 2^64-1 wrap.
func Parse(s string) (Value, error) {
	if s == "" {
		return Zero, fmt.Errorf("parse %q: %w", s, ErrSyntax)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Zero, fmt.Errorf("parse %q: %w", s, ErrSyntax)
		}
	}
	return parseDigits(s), nil
}

// MustParse is Parse for constants; it panics on invalid input.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// parseDigits expects a validated digit string. Short strings fit a float
// mantissa and go straight into the low limb; longer strings peel off the low
// nine digits and scale the rest by 10^9.
func parseDigits(s string) Value {
	if len(s) <= directDigits {
		n, _ := strconv.ParseInt(s, 10, 64)
		return FromInt64(n)
	}
	split := len(s) - chunkDigits
	high := parseDigits(s[:split])
	low, _ := strconv.ParseInt(s[split:], 10, 64)
	// 10^9 exceeds ScalarLimit, so scale in three steps of 1000.
	return high.Mul(1000, 3).Add(FromInt64(low))
}

// Hi returns the upper limb.
func (v Value) Hi() uint32 { return v.hi }

// Lo returns the lower limb.
func (v Value) Lo() uint32 { return v.lo }

// Rem returns the remainder left by the last iteration of Div.
func (v Value) Rem() uint32 { return v.rem }

// IsZero reports whether both limbs are zero.
func (v Value) IsZero() bool { return v.hi == 0 && v.lo == 0 }

// Uint64 returns the native value.
func (v Value) Uint64() uint64 { return uint64(v.hi)<<32 | uint64(v.lo) }

// Int32 reinterprets the low limb as a signed 32-bit integer.
func (v Value) Int32() int32 { return int32(v.lo) }

// Float64 returns the nearest float. Values past 2^53 lose precision.
func (v Value) Float64() float64 {
	return float64(v.hi)*float64(limbBase) + float64(v.lo)
}

// Add returns v + x modulo 2^64.
func (v Value) Add(x Value) Value {
	return FromLimbs(int64(v.hi)+int64(x.hi), int64(v.lo)+int64(x.lo))
}

// Sub returns v - x modulo 2^64.
func (v Value) Sub(x Value) Value {
	return FromLimbs(int64(v.hi)-int64(x.hi), int64(v.lo)-int64(x.lo))
}

// Mul multiplies v by k, n times over. k must be below ScalarLimit. A repeat
// count below one is treated as one.
func (v Value) Mul(k uint32, n int) Value {
	if n < 1 {
		n = 1
	}
	scalar := int64(k)
	hi, lo := int64(v.hi), int64(v.lo)
	for i := 0; i < n; i++ {
		hi *= scalar
		lo *= scalar
		hi += lo / limbBase
		lo %= limbBase
		hi %= limbBase
	}
	return FromLimbs(hi, lo)
}

// Div divides v by k, n times over, and keeps the remainder of the last
// iteration. k must be below ScalarLimit. A zero k yields zero with a zero
// remainder. A repeat count below one is treated as one.
func (v Value) Div(k uint32, n int) Value {
	if k == 0 {
		return Value{}
	}
	if n < 1 {
		n = 1
	}
	scalar := int64(k)
	hi, lo := int64(v.hi), int64(v.lo)
	var rem int64
	for i := 0; i < n; i++ {
		lo += (hi % scalar) * limbBase
		hi /= scalar
		rem = lo % scalar
		lo /= scalar
	}
	out := FromLimbs(hi, lo)
	out.rem = uint32(rem)
	return out
}

// Cmp returns -1, 0 or +1 comparing v to x, high limb first.
func (v Value) Cmp(x Value) int {
	switch {
	case v.hi < x.hi:
		return -1
	case v.hi > x.hi:
		return 1
	case v.lo < x.lo:
		return -1
	case v.lo > x.lo:
		return 1
	default:
		return 0
	}
}

// Eq reports whether v and x hold the same number. Remainders are ignored.
func (v Value) Eq(x Value) bool { return v.hi == x.hi && v.lo == x.lo }

// Lt reports whether v < x.
func (v Value) Lt(x Value) bool { return v.Cmp(x) < 0 }

// Gt reports whether v > x.
func (v Value) Gt(x Value) bool { return v.Cmp(x) > 0 }

// String renders v in decimal by repeated division by ten.
func (v Value) String() string {
	if v.hi == 0 {
		return strconv.FormatUint(uint64(v.lo), 10)
	}
	var tail []byte
	x := v
	for x.hi != 0 {
		x = x.Div(10, 1)
		tail = append(tail, byte('0'+x.rem))
	}
	for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
		tail[i], tail[j] = tail[j], tail[i]
	}
	return strconv.FormatUint(uint64(x.lo), 10) + string(tail)
}

// Padded renders v zero-padded to PaddedWidth so that string ordering agrees
// with numeric ordering.
func (v Value) Padded() string {
	s := v.String()
	return strings.Repeat("0", PaddedWidth-len(s)) + s
}

// MarshalText encodes v as decimal text.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes decimal text into v.
func (v *Value) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
