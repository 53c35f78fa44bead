package lever

import "errors"

var (
	// ErrInvalidParameter malformed market or position parameters. Not
	// recoverable without fixing the caller.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrRepayExceedsDebt repay amount greater than live debt. Recoverable:
	// re-query live debt and retry with a corrected amount.
	ErrRepayExceedsDebt = errors.New("repay exceeds live debt")
	// ErrInsufficientCollateralForBonus remaining collateral cannot cover the
	// requested partial liquidation plus bonus. Recoverable: retry the whole
	// liquidation with the full live debt.
	ErrInsufficientCollateralForBonus = errors.New("insufficient collateral for liquidation bonus")
	// ErrRedeemExceedsShares redeem request greater than the circulating
	// share supply. Not recoverable without fixing the caller.
	ErrRedeemExceedsShares = errors.New("redeem exceeds circulating shares")
	// ErrInsufficientLiquidity pool cash cannot cover the redemption.
	// Recoverable: retry once borrows are repaid or deposits arrive.
	ErrInsufficientLiquidity = errors.New("insufficient pool liquidity")
)
