package buyout

import (
	"context"

	"cosmossdk.io/math"

	"lever/core"
	"lever/internal/lever"
	"lever/pkg/fixedpoint"
)

// Quote buffers submitted by callers: premium padded 5%, debt repayment
// padded 0.1%. Excess is refunded at settlement.
const (
	premiumBufferBps = fixedpoint.MaxBps + 500
	repayBufferBps   = fixedpoint.MaxBps + 10
)

// Config buyout service config
type Config struct {
	// BuyoutAssetID asset the premium is paid in
	BuyoutAssetID string
}

type buyoutService struct {
	vaultStore core.IVaultStore
	priceSrv   core.IPriceOracleService
	cfg        Config
}

// New new buyout service
func New(vaultStore core.IVaultStore, priceSrv core.IPriceOracleService, cfg Config) core.IBuyoutService {
	return &buyoutService{
		vaultStore: vaultStore,
		priceSrv:   priceSrv,
		cfg:        cfg,
	}
}

func (s *buyoutService) Quote(ctx context.Context, market *core.Market, borrow *core.Borrow, collateralLST math.Int) (*lever.BuyoutQuote, error) {
	basePrice, e := s.priceSrv.GetPrice(ctx, market.AssetID)
	if e != nil {
		return nil, e
	}

	buyoutPrice, e := s.priceSrv.GetPrice(ctx, s.cfg.BuyoutAssetID)
	if e != nil {
		return nil, e
	}

	vault, e := s.vaultStore.Find(ctx, market.AssetID)
	if e != nil {
		return nil, e
	}

	quote, e := lever.ComputeBuyoutTerms(
		collateralLST, market.TotalDeposits.Int, vault.CirculatingShares.Int,
		basePrice, basePrice, buyoutPrice,
		borrow.Snapshot(), market.BorrowIndex.Int,
		market.LiqThresholdBps,
	)
	if e != nil {
		return nil, e
	}

	return &quote, nil
}

// QuoteWithBuffer pads the quote for submission. Rounding is up on both
// legs so a buffered amount always covers the unbuffered one.
func (s *buyoutService) QuoteWithBuffer(ctx context.Context, market *core.Market, borrow *core.Borrow, collateralLST math.Int) (*core.BufferedBuyoutQuote, error) {
	quote, e := s.Quote(ctx, market, borrow, collateralLST)
	if e != nil {
		return nil, e
	}

	return &core.BufferedBuyoutQuote{
		BuyoutQuote:           *quote,
		BufferedPremiumTokens: fixedpoint.BpsMulCeil(quote.PremiumTokens, premiumBufferBps),
		BufferedRepayTokens:   fixedpoint.BpsMulCeil(quote.DebtRepaymentTokens, repayBufferBps),
	}, nil
}
