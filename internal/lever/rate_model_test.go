package lever

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateStateWithUtil(utilBps uint64) MarketRateState {
	// deposits of 1e12 micro units make the utilization exact
	deposits := math.NewInt(1_000_000_000_000)
	borrows := deposits.MulRaw(int64(utilBps)).QuoRaw(10_000)

	return MarketRateState{
		TotalDeposits: deposits,
		TotalBorrows:  borrows,
		BaseBps:       200,
		UtilCapBps:    10_000,
		KinkNormBps:   5_000,
		Slope1Bps:     1_000,
		Slope2Bps:     4_000,
	}
}

func TestCurrentAprBpsBelowKink(t *testing.T) {
	// base=200, kink=5000, slope1=1000: U=5000 -> 1200 bps
	res, err := CurrentAprBps(rateStateWithUtil(5_000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1_200), res.AprBps)
	assert.Equal(t, uint64(1_200), res.NextPrevAprBps)
	assert.Equal(t, uint64(5_000), res.NextUtilEmaBps)
}

func TestCurrentAprBpsAboveKink(t *testing.T) {
	// U=7500 -> 1200 + 4000*2500/5000 = 3200 bps
	res, err := CurrentAprBps(rateStateWithUtil(7_500))
	require.NoError(t, err)
	assert.Equal(t, uint64(3_200), res.AprBps)
}

func TestKinkContinuity(t *testing.T) {
	for _, kink := range []uint64{1, 2_500, 5_000, 7_919, 9_999} {
		s := rateStateWithUtil(kink)
		s.KinkNormBps = kink

		pre := s.BaseBps + s.Slope1Bps*kink/kink
		post := s.BaseBps + s.Slope1Bps + s.Slope2Bps*(kink-kink)/(10_000-kink)
		assert.Equal(t, pre, post, "branches must meet at kink %d", kink)

		res, err := CurrentAprBps(s)
		require.NoError(t, err)
		assert.Equal(t, pre, res.AprBps)
	}
}

func TestAprMonotoneInUtilization(t *testing.T) {
	prev := uint64(0)
	for u := uint64(0); u <= 10_000; u += 137 {
		res, err := CurrentAprBps(rateStateWithUtil(u))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.AprBps, prev, "apr must not fall as utilization rises (U=%d)", u)
		prev = res.AprBps
	}
}

func TestUtilizationCapBand(t *testing.T) {
	deposits := math.NewInt(1_000_000)

	// borrowing beyond the cap band never raises utilization above 10000
	u := UtilizationBps(deposits, deposits.MulRaw(5), 8_000)
	assert.Equal(t, uint64(10_000), u)

	// half the cap band is 50% utilization
	u = UtilizationBps(deposits, math.NewInt(400_000), 8_000)
	assert.Equal(t, uint64(5_000), u)

	// empty pool
	assert.Equal(t, uint64(0), UtilizationBps(math.ZeroInt(), deposits, 8_000))
}

func TestMaxAprClamp(t *testing.T) {
	s := rateStateWithUtil(10_000)
	s.MaxAprBps = 2_000

	res, err := CurrentAprBps(s)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000), res.AprBps)
}

func TestFixedRateModel(t *testing.T) {
	s := rateStateWithUtil(9_000)
	s.Model = RateModelFixed
	s.FixedAprBps = 777

	res, err := CurrentAprBps(s)
	require.NoError(t, err)
	assert.Equal(t, uint64(777), res.AprBps)
}

func TestEmaSmoothing(t *testing.T) {
	s := rateStateWithUtil(10_000)
	s.EmaAlphaBps = 1_000
	s.UtilEmaBps = 0

	res, err := CurrentAprBps(s)
	require.NoError(t, err)
	// U_used = (1000*10000 + 9000*0) / 10000 = 1000
	assert.Equal(t, uint64(1_000), res.NextUtilEmaBps)

	s.UtilEmaBps = res.NextUtilEmaBps
	res, err = CurrentAprBps(s)
	require.NoError(t, err)
	// next step: (1000*10000 + 9000*1000) / 10000 = 1900
	assert.Equal(t, uint64(1_900), res.NextUtilEmaBps)
}

func TestAprStepLimiter(t *testing.T) {
	s := rateStateWithUtil(10_000)
	s.MaxAprStepBps = 100

	// first ever call anchors on the base rate
	res, err := CurrentAprBps(s)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), res.AprBps)

	// subsequent calls anchor on the previous rate
	s.PrevAprBps = res.NextPrevAprBps
	res, err = CurrentAprBps(s)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), res.AprBps)

	// downward moves are limited too
	s = rateStateWithUtil(0)
	s.MaxAprStepBps = 100
	s.PrevAprBps = 5_000
	res, err = CurrentAprBps(s)
	require.NoError(t, err)
	assert.Equal(t, uint64(4_900), res.AprBps)
}

func TestInvalidRateParameters(t *testing.T) {
	s := rateStateWithUtil(5_000)
	s.KinkNormBps = 0
	_, err := CurrentAprBps(s)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	s = rateStateWithUtil(5_000)
	s.KinkNormBps = 10_001
	_, err = CurrentAprBps(s)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	s = rateStateWithUtil(5_000)
	s.UtilCapBps = 0
	_, err = CurrentAprBps(s)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
