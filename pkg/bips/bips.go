// Package bips provides basis-point arithmetic shared by the ledger modules.
// All percentage parameters in the system are expressed in basis points
// (1 bip = 0.01%) and applied with truncating integer math.
package bips

import (
	"cosmossdk.io/math"
)

// BasisPoints is the denominator of all basis-point fractions.
const BasisPoints int64 = 10_000

// Of returns amount * bps / BasisPoints, truncated.
func Of(amount math.Int, bps int64) math.Int {
	return amount.Mul(math.NewInt(bps)).Quo(math.NewInt(BasisPoints))
}

// DecOf returns value * bps / BasisPoints as a decimal.
func DecOf(value math.LegacyDec, bps int64) math.LegacyDec {
	return value.MulInt64(bps).QuoInt64(BasisPoints)
}

// ApplyStep scales value by (BasisPoints + stepBps) / BasisPoints. A negative
// step shrinks the value. Truncating.
func ApplyStep(value math.Int, stepBps int64) math.Int {
	return value.Mul(math.NewInt(BasisPoints + stepBps)).Quo(math.NewInt(BasisPoints))
}

// ApplyDecStep scales a decimal by (BasisPoints + stepBps) / BasisPoints.
func ApplyDecStep(value math.LegacyDec, stepBps int64) math.LegacyDec {
	return value.MulInt64(BasisPoints + stepBps).QuoInt64(BasisPoints)
}

// Ratio returns numerator/denominator in basis points, truncated. Zero
// denominator yields zero.
func Ratio(numerator, denominator math.Int) int64 {
	if denominator.IsZero() {
		return 0
	}
	return numerator.Mul(math.NewInt(BasisPoints)).Quo(denominator).Int64()
}

// Valid reports whether bps is a well-formed fraction of the whole.
func Valid(bps int64) bool {
	return bps >= 0 && bps <= BasisPoints
}
