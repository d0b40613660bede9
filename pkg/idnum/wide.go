package idnum

import (
	"math"

	"lukechampine.com/uint128"
)

// Wide implements Number for 128-bit identifiers.
type Wide struct{}

func (Wide) Min() uint128.Uint128 { return uint128.Zero }

func (Wide) Max() uint128.Uint128 { return uint128.Max }

func (Wide) Compare(a, b uint128.Uint128) int { return a.Cmp(b) }

func (Wide) Inc(v uint128.Uint128) uint128.Uint128 {
	if v.Equals(uint128.Max) {
		return uint128.Zero
	}
	return v.Add64(1)
}

func (Wide) Dec(v uint128.Uint128) uint128.Uint128 {
	if v.IsZero() {
		return uint128.Max
	}
	return v.Sub64(1)
}

func (Wide) Format(v uint128.Uint128) string { return v.String() }

func (Wide) Float(v uint128.Uint128) float64 {
	return float64(v.Hi)*math.Exp2(64) + float64(v.Lo)
}
