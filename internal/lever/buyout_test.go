package lever

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBuyoutTermsNoDebt(t *testing.T) {
	q, err := ComputeBuyoutTerms(
		math.NewInt(1_000_000), math.NewInt(1_000_000), math.NewInt(1_000_000),
		math.NewInt(1_000_000), math.NewInt(1_000_000), math.NewInt(1_000_000),
		BorrowerSnapshot{Principal: math.ZeroInt(), UserIndex: wad(1_000)}, wad(1_100),
		6_667,
	)
	require.NoError(t, err)
	assert.True(t, q.DebtRepaymentTokens.IsZero())
	assert.True(t, q.CollateralUSD.IsZero())
	assert.True(t, q.PremiumTokens.IsZero())
}

func TestComputeBuyoutTermsSpecScenario(t *testing.T) {
	// collateral 1000 USD, debt 500 USD, threshold 6667: CR=20000 bps,
	// premium rate = 20000*10000/6667 - 10000
	q, err := ComputeBuyoutTerms(
		math.NewInt(500_000_000), math.NewInt(500_000_000), math.NewInt(500_000_000),
		math.NewInt(2_000_000), // underlying at 2 USD -> collateral 1000 USD
		math.NewInt(1_000_000), // base token at 1 USD
		math.NewInt(1_000_000), // buyout token at 1 USD
		BorrowerSnapshot{Principal: math.NewInt(500_000_000), UserIndex: wad(1_000)}, wad(1_000),
		6_667,
	)
	require.NoError(t, err)

	assert.Equal(t, usd(1_000), q.CollateralUSD)
	assert.Equal(t, usd(500), q.DebtUSD)
	assert.Equal(t, int64(20_000), q.CRBps.Int64())
	// floor(20000*10000/6667) - 10000
	assert.Equal(t, int64(19_998), q.PremiumRateBps.Int64())
	assert.Equal(t, q.PremiumUSD, q.CollateralUSD.MulRaw(19_998).QuoRaw(10_000))
	// buyout token at 1 USD: tokens equal the micro-USD premium
	assert.Equal(t, q.PremiumUSD, q.PremiumTokens)
}

func TestBuyoutPremiumZeroAtOrBelowThreshold(t *testing.T) {
	// CR exactly at the threshold carries no premium
	q, err := ComputeBuyoutTerms(
		math.NewInt(6_667), math.NewInt(1_000_000), math.NewInt(1_000_000),
		math.NewInt(1_000_000), math.NewInt(1_000_000), math.NewInt(1_000_000),
		BorrowerSnapshot{Principal: math.NewInt(10_000), UserIndex: wad(1_000)}, wad(1_000),
		6_667,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(6_667), q.CRBps.Int64())
	assert.True(t, q.PremiumRateBps.IsZero())
	assert.True(t, q.PremiumUSD.IsZero())
	assert.True(t, q.PremiumTokens.IsZero())
}

func TestBuyoutPremiumStrictlyPositiveAboveThreshold(t *testing.T) {
	for _, cr := range []int64{6_668, 7_000, 10_000, 13_500, 50_000} {
		q, err := ComputeBuyoutTerms(
			math.NewInt(cr), math.NewInt(1_000_000), math.NewInt(1_000_000),
			math.NewInt(1_000_000), math.NewInt(1_000_000), math.NewInt(1_000_000),
			BorrowerSnapshot{Principal: math.NewInt(10_000), UserIndex: wad(1_000)}, wad(1_000),
			6_667,
		)
		require.NoError(t, err)
		assert.True(t, q.PremiumRateBps.IsPositive(), "premium must be positive at CR %d", cr)
	}
}

func TestBuyoutZeroBuyoutTokenPrice(t *testing.T) {
	q, err := ComputeBuyoutTerms(
		math.NewInt(500_000_000), math.NewInt(500_000_000), math.NewInt(500_000_000),
		math.NewInt(2_000_000), math.NewInt(1_000_000), math.ZeroInt(),
		BorrowerSnapshot{Principal: math.NewInt(500_000_000), UserIndex: wad(1_000)}, wad(1_000),
		6_667,
	)
	require.NoError(t, err)
	assert.True(t, q.PremiumUSD.IsPositive())
	assert.True(t, q.PremiumTokens.IsZero())
}

func TestBuyoutAccountsForIndexGrowth(t *testing.T) {
	// debt grew 10% since the snapshot
	q, err := ComputeBuyoutTerms(
		math.NewInt(500_000_000), math.NewInt(500_000_000), math.NewInt(500_000_000),
		math.NewInt(2_000_000), math.NewInt(1_000_000), math.NewInt(1_000_000),
		BorrowerSnapshot{Principal: math.NewInt(500_000_000), UserIndex: wad(1_000)}, wad(1_100),
		6_667,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(550_000_000), q.DebtRepaymentTokens.Int64())
	assert.Equal(t, usd(550), q.DebtUSD)
}

func TestBuyoutInvalidThreshold(t *testing.T) {
	_, err := ComputeBuyoutTerms(
		math.NewInt(1), math.NewInt(1), math.NewInt(1),
		math.NewInt(1), math.NewInt(1), math.NewInt(1),
		BorrowerSnapshot{Principal: math.NewInt(1), UserIndex: wad(1_000)}, wad(1_000),
		0,
	)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
