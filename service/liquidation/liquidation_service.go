package liquidation

import (
	"context"
	"errors"

	"cosmossdk.io/math"
	"github.com/fox-one/pkg/logger"

	"lever/core"
	"lever/internal/lever"
	"lever/pkg/fixedpoint"
)

type liquidationService struct {
	vaultStore core.IVaultStore
	priceSrv   core.IPriceOracleService
}

// New new liquidation service
func New(vaultStore core.IVaultStore, priceSrv core.IPriceOracleService) core.ILiquidationService {
	return &liquidationService{
		vaultStore: vaultStore,
		priceSrv:   priceSrv,
	}
}

// Preview prices a liquidation from the current snapshot. When the
// collateral cannot support a partial repay's bonus the request is retried
// with the full live debt: settlement is atomic on chain, a position cannot
// be left half liquidated.
func (s *liquidationService) Preview(ctx context.Context, market *core.Market, borrow *core.Borrow, collateralLST, requestedRepay math.Int) (*lever.LiquidationQuote, error) {
	log := logger.FromContext(ctx).WithField("service", "liquidation")

	liveDebt, basePrice, collateralUSD, e := s.valuation(ctx, market, borrow, collateralLST)
	if e != nil {
		return nil, e
	}

	quote, e := lever.PreviewLiquidation(liveDebt, basePrice, collateralUSD, market.LiqThresholdBps, market.LiqBonusBps, requestedRepay)
	if errors.Is(e, lever.ErrInsufficientCollateralForBonus) {
		log.WithField("asset", market.AssetID).Debugln("partial bonus not covered, retrying with full debt")
		quote, e = lever.PreviewLiquidation(liveDebt, basePrice, collateralUSD, market.LiqThresholdBps, market.LiqBonusBps, liveDebt)
	}
	if e != nil {
		return nil, e
	}

	return &quote, nil
}

func (s *liquidationService) Zone(ctx context.Context, market *core.Market, borrow *core.Borrow, collateralLST math.Int) (lever.HealthZone, error) {
	liveDebt, basePrice, collateralUSD, e := s.valuation(ctx, market, borrow, collateralLST)
	if e != nil {
		return lever.ZoneHealthy, e
	}

	return lever.PositionZone(collateralUSD, fixedpoint.MicroUSD(liveDebt, basePrice), market.LiqThresholdBps)
}

func (s *liquidationService) valuation(ctx context.Context, market *core.Market, borrow *core.Borrow, collateralLST math.Int) (liveDebt, basePrice, collateralUSD math.Int, err error) {
	liveDebt = lever.LiveDebtFromSnapshot(borrow.Snapshot(), market.BorrowIndex.Int)

	basePrice, err = s.priceSrv.GetPrice(ctx, market.AssetID)
	if err != nil {
		return
	}

	vault, e := s.vaultStore.Find(ctx, market.AssetID)
	if e != nil {
		err = e
		return
	}

	collateralUSD = lever.CollateralUSDFromLST(collateralLST, market.TotalDeposits.Int, vault.CirculatingShares.Int, basePrice)
	return
}
