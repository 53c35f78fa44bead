package lever

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lever/pkg/fixedpoint"
)

func mustAccrue(t *testing.T, s AccrualState, now int64, aprBps, protocolBps uint64) AccrualState {
	t.Helper()

	next, err := Accrue(s, now, aprBps, protocolBps)
	require.NoError(t, err)
	return next
}

func TestAccrueNoOpOnSameInstant(t *testing.T) {
	s := GenesisAccrualState(1_000)
	s.TotalBorrows = math.NewInt(500_000_000)
	s.TotalDeposits = math.NewInt(1_000_000_000)

	assert.Equal(t, s, mustAccrue(t, s, 1_000, 1_200, 1_000))
	assert.Equal(t, s, mustAccrue(t, s, 999, 1_200, 1_000))
}

func TestAccrueOneYearSimpleSlice(t *testing.T) {
	s := GenesisAccrualState(0)
	s.TotalBorrows = math.NewInt(1_000_000_000) // 1000 tokens
	s.TotalDeposits = math.NewInt(2_000_000_000)

	// a single 12% APR slice over a full year, 10% to the protocol
	next := mustAccrue(t, s, fixedpoint.SecondsPerYear, 1_200, 1_000)

	interest := int64(120_000_000)
	assert.Equal(t, s.TotalBorrows.AddRaw(interest), next.TotalBorrows)
	assert.Equal(t, s.TotalDeposits.AddRaw(interest*9/10), next.TotalDeposits)
	assert.Equal(t, interest/10, next.FeePool.Int64())
	assert.Equal(t, fixedpoint.SecondsPerYear, next.LastAccrualTs)

	// index grew by exactly the simple factor
	assert.Equal(t, int64(1_120_000_000_000), next.BorrowIndex.Int64())
}

func TestAccrueSplitRemainderToProtocol(t *testing.T) {
	s := GenesisAccrualState(0)
	s.TotalBorrows = math.NewInt(1_000_003)
	s.TotalDeposits = math.NewInt(2_000_000)

	next := mustAccrue(t, s, fixedpoint.SecondsPerYear, 1_000, 3_333)

	interest := next.TotalBorrows.Sub(s.TotalBorrows)
	depositor := next.TotalDeposits.Sub(s.TotalDeposits)
	protocol := next.FeePool

	// no interest is lost or created by the split
	assert.Equal(t, interest, depositor.Add(protocol))
	// the rounding remainder lands on the protocol side
	assert.True(t, protocol.GTE(fixedpoint.BpsMul(interest, 3_333)))
}

func TestAccrueRejectsProtocolShareOverOneHundredPercent(t *testing.T) {
	s := GenesisAccrualState(0)
	s.TotalBorrows = math.NewInt(1_000_000_000)
	s.TotalDeposits = math.NewInt(2_000_000_000)

	// 10001 bps would wrap the 10000-protocolBps depositor share and mint
	// depositor interest out of thin air; the slice must not advance
	next, err := Accrue(s, fixedpoint.SecondsPerYear, 1_200, 10_001)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, s, next)

	// the full range up to 100% stays valid
	next = mustAccrue(t, s, fixedpoint.SecondsPerYear, 1_200, 10_000)
	assert.Equal(t, s.TotalDeposits, next.TotalDeposits)
	assert.Equal(t, int64(120_000_000), next.FeePool.Int64())
}

func TestIndexMonotonic(t *testing.T) {
	s := GenesisAccrualState(0)
	s.TotalBorrows = math.NewInt(123_456_789)
	s.TotalDeposits = math.NewInt(900_000_000)

	now := int64(0)
	prev := s.BorrowIndex
	for i, step := range []int64{1, 0, 13, 3_600, 86_400, 1, 31_536_000} {
		now += step
		s = mustAccrue(t, s, now, uint64(100*(i+1)), 500)
		assert.True(t, s.BorrowIndex.GTE(prev), "index must never decrease")
		prev = s.BorrowIndex
	}
}

func TestIndexCompoundsAcrossSlices(t *testing.T) {
	single := GenesisAccrualState(0)
	single.TotalBorrows = math.NewInt(1_000_000_000)
	single.TotalDeposits = math.NewInt(1_000_000_000)
	split := single

	year := fixedpoint.SecondsPerYear
	single = mustAccrue(t, single, year, 2_000, 0)

	split = mustAccrue(t, split, year/2, 2_000, 0)
	split = mustAccrue(t, split, year, 2_000, 0)

	// two half-year slices compound and beat one simple full-year slice
	assert.True(t, split.BorrowIndex.GT(single.BorrowIndex))
}

func TestAccrueZeroRate(t *testing.T) {
	s := GenesisAccrualState(0)
	s.TotalBorrows = math.NewInt(77)
	s.TotalDeposits = math.NewInt(100)

	next := mustAccrue(t, s, 86_400, 0, 1_000)
	assert.Equal(t, s.TotalBorrows, next.TotalBorrows)
	assert.Equal(t, s.BorrowIndex, next.BorrowIndex)
	assert.Equal(t, int64(86_400), next.LastAccrualTs)
}
