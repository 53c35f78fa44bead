package lever

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lever/pkg/fixedpoint"
)

func wad(v int64) math.Int {
	return fixedpoint.IndexScale.MulRaw(v).QuoRaw(1_000)
}

func TestLiveDebtReplayIdempotent(t *testing.T) {
	idx := wad(1_234)
	b := BorrowerSnapshot{Principal: math.NewInt(500_000), UserIndex: idx}

	// unchanged index means no growth
	assert.Equal(t, b.Principal, LiveDebtFromSnapshot(b, idx))
}

func TestLiveDebtGrowsWithIndex(t *testing.T) {
	b := BorrowerSnapshot{Principal: math.NewInt(1_000_000), UserIndex: wad(1_000)}

	// index grew 10% since the snapshot
	assert.Equal(t, int64(1_100_000), LiveDebtFromSnapshot(b, wad(1_100)).Int64())
}

func TestLiveDebtZeroPrincipal(t *testing.T) {
	b := BorrowerSnapshot{Principal: math.ZeroInt(), UserIndex: wad(1_000)}
	assert.True(t, LiveDebtFromSnapshot(b, wad(2_000)).IsZero())
}

func TestLiveDebtDefaultsMissingSnapshotIndex(t *testing.T) {
	b := BorrowerSnapshot{Principal: math.NewInt(42)}
	assert.Equal(t, int64(42), LiveDebtFromSnapshot(b, wad(1_500)).Int64())
}

func TestApplyBorrowCrystallizesInterest(t *testing.T) {
	b := BorrowerSnapshot{Principal: math.NewInt(1_000_000), UserIndex: wad(1_000)}
	totalBorrows := math.NewInt(10_000_000)

	next, nextTotal := ApplyBorrow(math.NewInt(500_000), b, wad(1_200), totalBorrows)

	// accrued 20% folds into principal before the new draw
	assert.Equal(t, int64(1_700_000), next.Principal.Int64())
	assert.Equal(t, wad(1_200), next.UserIndex)
	// only fresh principal moves the market total, accrual already added the rest
	assert.Equal(t, int64(10_500_000), nextTotal.Int64())
}

func TestApplyRepayPartial(t *testing.T) {
	b := BorrowerSnapshot{Principal: math.NewInt(1_000_000), UserIndex: wad(1_000)}

	next, nextTotal, fullyRepaid, err := ApplyRepay(math.NewInt(300_000), b, wad(1_100), math.NewInt(5_000_000))
	require.NoError(t, err)
	assert.False(t, fullyRepaid)
	assert.Equal(t, int64(800_000), next.Principal.Int64())
	assert.Equal(t, wad(1_100), next.UserIndex)
	assert.Equal(t, int64(4_700_000), nextTotal.Int64())
}

func TestApplyRepayFull(t *testing.T) {
	b := BorrowerSnapshot{Principal: math.NewInt(1_000_000), UserIndex: wad(1_000)}

	next, _, fullyRepaid, err := ApplyRepay(math.NewInt(1_100_000), b, wad(1_100), math.NewInt(5_000_000))
	require.NoError(t, err)
	assert.True(t, fullyRepaid)
	assert.True(t, next.Principal.IsZero())
}

func TestApplyRepayExceedsDebt(t *testing.T) {
	b := BorrowerSnapshot{Principal: math.NewInt(1_000_000), UserIndex: wad(1_000)}
	totalBorrows := math.NewInt(5_000_000)

	next, nextTotal, fullyRepaid, err := ApplyRepay(math.NewInt(1_100_001), b, wad(1_100), totalBorrows)
	assert.ErrorIs(t, err, ErrRepayExceedsDebt)
	assert.False(t, fullyRepaid)
	// nothing mutated
	assert.Equal(t, b, next)
	assert.Equal(t, totalBorrows, nextTotal)
}

func TestCalculateDisbursement(t *testing.T) {
	// 10 collateral tokens at 3 USD, 50% LTV, base token at 1 USD
	d := CalculateDisbursement(
		math.NewInt(10_000_000), math.NewInt(3_000_000),
		5_000,
		math.NewInt(1_000_000), math.NewInt(12_000_000),
		100,
	)

	assert.Equal(t, int64(30_000_000), d.CollateralUSD.Int64())
	assert.Equal(t, int64(15_000_000), d.MaxBorrowUSD.Int64())
	assert.Equal(t, int64(12_000_000), d.BorrowValueUSD.Int64())
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(120_000), d.Fee.Int64())
	assert.Equal(t, int64(11_880_000), d.Disbursed.Int64())
}

func TestCalculateDisbursementLTVExceeded(t *testing.T) {
	d := CalculateDisbursement(
		math.NewInt(10_000_000), math.NewInt(3_000_000),
		5_000,
		math.NewInt(1_000_000), math.NewInt(15_000_001),
		0,
	)

	assert.False(t, d.Allowed)
	// the check signals without blocking the fee/disbursement math
	assert.Equal(t, int64(15_000_001), d.Disbursed.Int64())
}
