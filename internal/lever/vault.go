package lever

import (
	"cosmossdk.io/math"

	"lever/pkg/fixedpoint"
)

// CalculateLSTDue converts a base asset deposit into vault shares. The first
// depositor mints 1:1. Floor division: rounding error always favors the pool.
func CalculateLSTDue(amountIn, circulatingShares, totalDeposits math.Int) math.Int {
	if totalDeposits.IsZero() {
		return amountIn
	}

	return fixedpoint.MulDiv(amountIn, circulatingShares, totalDeposits)
}

// CalculateAssetDue converts vault shares back into the base asset amount.
// Approximate inverse of CalculateLSTDue; the floor keeps the round trip
// bounded by the amount deposited.
func CalculateAssetDue(sharesIn, circulatingShares, totalDeposits math.Int) math.Int {
	if circulatingShares.IsZero() {
		return math.ZeroInt()
	}

	return fixedpoint.MulDiv(sharesIn, totalDeposits, circulatingShares)
}

// CalculateRedemption prices a share redemption against the pool. A request
// above the circulating supply fails with ErrRedeemExceedsShares before any
// arithmetic: the floor in CalculateAssetDue would otherwise let an oversized
// request pass the cash check and drive the share supply negative. A priced
// redemption the pool cash (deposits minus borrows) cannot cover fails with
// ErrInsufficientLiquidity.
func CalculateRedemption(sharesIn, circulatingShares, totalDeposits, totalBorrows math.Int) (math.Int, error) {
	if sharesIn.GT(circulatingShares) {
		return math.ZeroInt(), ErrRedeemExceedsShares
	}

	amount := CalculateAssetDue(sharesIn, circulatingShares, totalDeposits)

	cash := totalDeposits.Sub(totalBorrows)
	if amount.GT(cash) {
		return math.ZeroInt(), ErrInsufficientLiquidity
	}

	return amount, nil
}

// CollateralUSDFromLST values an LST collateral amount in micro-USD by
// unwrapping it to the underlying base asset at the LST market's share price.
func CollateralUSDFromLST(lstAmount, totalDepositsLST, circulatingLST, underlyingBasePriceMicroUSD math.Int) math.Int {
	if lstAmount.IsZero() || totalDepositsLST.IsZero() || circulatingLST.IsZero() {
		return math.ZeroInt()
	}

	underlying := fixedpoint.MulDiv(lstAmount, totalDepositsLST, circulatingLST)
	return fixedpoint.MicroUSD(underlying, underlyingBasePriceMicroUSD)
}
