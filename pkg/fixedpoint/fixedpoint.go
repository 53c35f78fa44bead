package fixedpoint

import (
	"cosmossdk.io/math"
)

var (
	// IndexScale is the WAD scale (1e12) used for borrow indexes.
	IndexScale = math.NewInt(1_000_000_000_000)
	// MicroScale is the scale of token and USD micro-units (1e-6).
	MicroScale = math.NewInt(1_000_000)
	// BpsScale basis points per unit
	BpsScale = math.NewInt(10_000)
)

const (
	// MaxBps 100% in basis points
	MaxBps uint64 = 10_000
	// SecondsPerYear seconds in a non-leap year
	SecondsPerYear int64 = 365 * 24 * 60 * 60
)

// MulDiv returns floor(a * b / den). A zero denominator yields zero, callers
// that treat a zero denominator as an error must check before calling.
func MulDiv(a, b, den math.Int) math.Int {
	if den.IsZero() {
		return math.ZeroInt()
	}

	return a.Mul(b).Quo(den)
}

// BpsMul returns floor(amount * bps / 10000).
func BpsMul(amount math.Int, bps uint64) math.Int {
	return amount.Mul(math.NewIntFromUint64(bps)).Quo(BpsScale)
}

// BpsMulCeil returns ceil(amount * bps / 10000). Used where rounding must
// favor the protocol over the caller, such as quote buffers.
func BpsMulCeil(amount math.Int, bps uint64) math.Int {
	num := amount.Mul(math.NewIntFromUint64(bps))
	return num.Add(BpsScale.SubRaw(1)).Quo(BpsScale)
}

// RatioBps returns floor(num * 10000 / den) in basis points. A zero
// denominator yields zero.
func RatioBps(num, den math.Int) math.Int {
	return MulDiv(num, BpsScale, den)
}

// MicroUSD returns floor(amount * priceMicroUSD / 1e6), the micro-USD value
// of a micro-unit token amount.
func MicroUSD(amount, priceMicroUSD math.Int) math.Int {
	return MulDiv(amount, priceMicroUSD, MicroScale)
}

// MinInt returns the smaller of a and b.
func MinInt(a, b math.Int) math.Int {
	if a.LT(b) {
		return a
	}

	return b
}
