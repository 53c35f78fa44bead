package core

import (
	"context"

	"cosmossdk.io/math"

	"lever/internal/lever"
)

// ILiquidationService assembles live debt, collateral valuation and oracle
// prices into a priced liquidation. Preview retries a partial request with
// the full live debt when the collateral cannot support the partial bonus,
// matching the atomic settlement requirement.
type ILiquidationService interface {
	Preview(ctx context.Context, market *Market, borrow *Borrow, collateralLST, requestedRepay math.Int) (*lever.LiquidationQuote, error)
	Zone(ctx context.Context, market *Market, borrow *Borrow, collateralLST math.Int) (lever.HealthZone, error)
}
