package lever

import (
	"cosmossdk.io/math"

	"lever/pkg/fixedpoint"
)

// HealthZone positions a borrow relative to the liquidation threshold.
type HealthZone int

const (
	// ZoneHealthy health ratio at or above 1.2x the threshold, no action
	ZoneHealthy HealthZone = iota
	// ZoneNearLiquidation inside the warning band, not yet actionable
	ZoneNearLiquidation
	// ZoneLiquidatable at or below the threshold
	ZoneLiquidatable
)

// healthRatioBand is the warning multiplier: healthy at >= threshold * 1.2.
const (
	healthBandNum = 12
	healthBandDen = 10
)

// PositionZone classifies a position by health ratio (collateral USD over
// debt USD). The market threshold is max debt over collateral, so it is
// inverted before comparing. A zero debt is always healthy.
func PositionZone(collateralUSD, debtUSD math.Int, liqThresholdBps uint64) (HealthZone, error) {
	if liqThresholdBps == 0 || liqThresholdBps > fixedpoint.MaxBps {
		return ZoneHealthy, ErrInvalidParameter
	}

	if debtUSD.IsZero() {
		return ZoneHealthy, nil
	}

	healthBps := fixedpoint.RatioBps(collateralUSD, debtUSD)
	invThresholdBps := math.NewIntFromUint64(fixedpoint.MaxBps * fixedpoint.MaxBps / liqThresholdBps)

	if healthBps.MulRaw(healthBandDen).GTE(invThresholdBps.MulRaw(healthBandNum)) {
		return ZoneHealthy, nil
	}
	if healthBps.LTE(invThresholdBps) {
		return ZoneLiquidatable, nil
	}

	return ZoneNearLiquidation, nil
}

// LiquidationQuote is the priced outcome of a liquidation request. Amounts
// are zero outside ZoneLiquidatable. NetGainLossUSD is negative exactly in
// the bad debt case: the liquidator props up an insolvent position and the
// pool socializes the shortfall.
type LiquidationQuote struct {
	Zone              HealthZone
	BadDebt           bool
	FullRepayRequired bool

	CollateralUSD  math.Int
	DebtUSD        math.Int
	RepayTokens    math.Int
	RepayUSD       math.Int
	SeizeUSD       math.Int
	NetGainLossUSD math.Int
}

// PreviewLiquidation prices a liquidation of requestedRepayTokens against a
// position with the given live debt and collateral valuation.
//
// Bad debt (debt above collateral value) overrides any partial request to the
// full live debt and seizes all remaining collateral. For a solvent partial
// request whose bonus cannot be covered by the collateral the preview fails
// with ErrInsufficientCollateralForBonus; the required recovery is retrying
// the whole request with the full live debt, since settlement is atomic and
// cannot leave the position half liquidated.
func PreviewLiquidation(liveDebtTokens, baseTokenPriceMicroUSD, collateralUSD math.Int, liqThresholdBps, liqBonusBps uint64, requestedRepayTokens math.Int) (LiquidationQuote, error) {
	debtUSD := fixedpoint.MicroUSD(liveDebtTokens, baseTokenPriceMicroUSD)

	zone, err := PositionZone(collateralUSD, debtUSD, liqThresholdBps)
	if err != nil {
		return LiquidationQuote{}, err
	}

	quote := LiquidationQuote{
		Zone:           zone,
		CollateralUSD:  collateralUSD,
		DebtUSD:        debtUSD,
		RepayTokens:    math.ZeroInt(),
		RepayUSD:       math.ZeroInt(),
		SeizeUSD:       math.ZeroInt(),
		NetGainLossUSD: math.ZeroInt(),
	}

	if zone != ZoneLiquidatable {
		return quote, nil
	}

	if debtUSD.GT(collateralUSD) {
		quote.BadDebt = true
		quote.FullRepayRequired = true
		quote.RepayTokens = liveDebtTokens
		quote.RepayUSD = debtUSD
		quote.SeizeUSD = collateralUSD
		quote.NetGainLossUSD = collateralUSD.Sub(debtUSD)
		return quote, nil
	}

	repay := requestedRepayTokens
	if repay.IsNegative() {
		repay = math.ZeroInt()
	}
	if repay.GT(liveDebtTokens) {
		repay = liveDebtTokens
	}

	repayUSD := fixedpoint.MicroUSD(repay, baseTokenPriceMicroUSD)
	idealSeizeUSD := fixedpoint.BpsMul(repayUSD, fixedpoint.MaxBps+liqBonusBps)

	if idealSeizeUSD.GT(collateralUSD) && repay.LT(liveDebtTokens) {
		return LiquidationQuote{}, ErrInsufficientCollateralForBonus
	}

	quote.RepayTokens = repay
	quote.RepayUSD = repayUSD
	quote.SeizeUSD = fixedpoint.MinInt(idealSeizeUSD, collateralUSD)
	quote.NetGainLossUSD = quote.SeizeUSD.Sub(repayUSD)

	return quote, nil
}
