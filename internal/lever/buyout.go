package lever

import (
	"cosmossdk.io/math"

	"lever/pkg/fixedpoint"
)

// BuyoutQuote is the priced terms for a third party to atomically repay a
// position's debt and take over its collateral. All USD figures are
// micro-USD. CRBps and PremiumRateBps are basis points and unbounded above:
// the premium grows without bound as the position gets safer.
type BuyoutQuote struct {
	CollateralUSD       math.Int
	DebtUSD             math.Int
	CRBps               math.Int
	PremiumRateBps      math.Int
	PremiumUSD          math.Int
	PremiumTokens       math.Int
	DebtRepaymentTokens math.Int
}

func zeroBuyoutQuote() BuyoutQuote {
	zero := math.ZeroInt()
	return BuyoutQuote{
		CollateralUSD:       zero,
		DebtUSD:             zero,
		CRBps:               zero,
		PremiumRateBps:      zero,
		PremiumUSD:          zero,
		PremiumTokens:       zero,
		DebtRepaymentTokens: zero,
	}
}

// ComputeBuyoutTerms prices a buyout of the position described by the
// borrower snapshot and its LST collateral. A position with no live debt
// quotes all zeros. Positions at or below the liquidation threshold carry no
// premium; above it the premium rate is CR over threshold minus one, in
// basis points.
//
// Quotes are computed from a state snapshot and may be stale by execution
// time. Callers submitting transactions are expected to buffer the quote
// (the convention is +5% on the premium and +0.1% on the full debt
// repayment) and rely on the settlement layer to refund any excess.
func ComputeBuyoutTerms(
	collateralLSTAmount, totalDepositsLST, circulatingLST math.Int,
	underlyingBasePriceMicroUSD, baseTokenPriceMicroUSD, buyoutTokenPriceMicroUSD math.Int,
	position BorrowerSnapshot, borrowIndex math.Int,
	liqThresholdBps uint64,
) (BuyoutQuote, error) {
	if liqThresholdBps == 0 || liqThresholdBps > fixedpoint.MaxBps {
		return BuyoutQuote{}, ErrInvalidParameter
	}

	debtTokens := LiveDebtFromSnapshot(position, borrowIndex)
	if debtTokens.IsZero() {
		return zeroBuyoutQuote(), nil
	}

	collateralUSD := CollateralUSDFromLST(collateralLSTAmount, totalDepositsLST, circulatingLST, underlyingBasePriceMicroUSD)
	debtUSD := fixedpoint.MicroUSD(debtTokens, baseTokenPriceMicroUSD)

	quote := zeroBuyoutQuote()
	quote.CollateralUSD = collateralUSD
	quote.DebtUSD = debtUSD
	quote.DebtRepaymentTokens = debtTokens

	if debtUSD.IsZero() {
		return quote, nil
	}

	crBps := fixedpoint.RatioBps(collateralUSD, debtUSD)
	quote.CRBps = crBps

	threshold := math.NewIntFromUint64(liqThresholdBps)
	if crBps.LTE(threshold) {
		return quote, nil
	}

	quote.PremiumRateBps = fixedpoint.MulDiv(crBps, fixedpoint.BpsScale, threshold).Sub(fixedpoint.BpsScale)
	quote.PremiumUSD = fixedpoint.MulDiv(collateralUSD, quote.PremiumRateBps, fixedpoint.BpsScale)

	if buyoutTokenPriceMicroUSD.IsZero() {
		return quote, nil
	}

	quote.PremiumTokens = fixedpoint.MulDiv(quote.PremiumUSD, fixedpoint.MicroScale, buyoutTokenPriceMicroUSD)

	return quote, nil
}
