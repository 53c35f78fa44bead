package vault

import (
	"context"
	"time"

	"cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"lever/core"
	"lever/internal/lever"
	"lever/pkg/fixedpoint"
)

type vaultService struct {
	db          *db.DB
	marketStore core.IMarketStore
	vaultStore  core.IVaultStore
	priceSrv    core.IPriceOracleService
	marketSrv   core.IMarketService
}

// New new vault service
func New(
	db *db.DB,
	marketStore core.IMarketStore,
	vaultStore core.IVaultStore,
	priceSrv core.IPriceOracleService,
	marketSrv core.IMarketService,
) core.IVaultService {
	return &vaultService{
		db:          db,
		marketStore: marketStore,
		vaultStore:  vaultStore,
		priceSrv:    priceSrv,
		marketSrv:   marketSrv,
	}
}

func (s *vaultService) SharesDue(ctx context.Context, market *core.Market, vault *core.Vault, amountIn math.Int) math.Int {
	return lever.CalculateLSTDue(amountIn, vault.CirculatingShares.Int, market.TotalDeposits.Int)
}

func (s *vaultService) AssetDue(ctx context.Context, market *core.Market, vault *core.Vault, sharesIn math.Int) math.Int {
	return lever.CalculateAssetDue(sharesIn, vault.CirculatingShares.Int, market.TotalDeposits.Int)
}

// PreviewRedeem prices a redemption without mutating anything: it enforces
// the circulating supply bound and the pool cash bound Redeem settles under.
func (s *vaultService) PreviewRedeem(ctx context.Context, market *core.Market, vault *core.Vault, sharesIn math.Int) (math.Int, error) {
	if !sharesIn.IsPositive() {
		return math.ZeroInt(), core.ErrInvalidAmount
	}

	return lever.CalculateRedemption(sharesIn, vault.CirculatingShares.Int, market.TotalDeposits.Int, market.TotalBorrows.Int)
}

func (s *vaultService) Deposit(ctx context.Context, market *core.Market, vault *core.Vault, userID string, amountIn math.Int) (math.Int, error) {
	if !amountIn.IsPositive() {
		return math.ZeroInt(), core.ErrInvalidAmount
	}

	var shares math.Int
	err := s.db.Tx(func(tx *db.DB) error {
		if e := s.marketSrv.AccrueInterest(ctx, tx, market, time.Now()); e != nil {
			return e
		}

		shares = s.SharesDue(ctx, market, vault, amountIn)

		market.TotalDeposits = fixedpoint.NewAmount(market.TotalDeposits.Add(amountIn))
		vault.CirculatingShares = fixedpoint.NewAmount(vault.CirculatingShares.Add(shares))

		if e := s.marketStore.Update(ctx, tx, market); e != nil {
			return e
		}

		return s.vaultStore.Update(ctx, tx, vault)
	})
	if err != nil {
		return math.ZeroInt(), err
	}

	return shares, nil
}

func (s *vaultService) Redeem(ctx context.Context, market *core.Market, vault *core.Vault, userID string, sharesIn math.Int) (math.Int, error) {
	if !sharesIn.IsPositive() {
		return math.ZeroInt(), core.ErrInvalidAmount
	}

	var amount math.Int
	err := s.db.Tx(func(tx *db.DB) error {
		if e := s.marketSrv.AccrueInterest(ctx, tx, market, time.Now()); e != nil {
			return e
		}

		// bounds by circulating supply first, then by pool cash: deposits
		// lent out cannot be redeemed
		priced, e := lever.CalculateRedemption(sharesIn, vault.CirculatingShares.Int, market.TotalDeposits.Int, market.TotalBorrows.Int)
		if e != nil {
			return e
		}
		amount = priced

		market.TotalDeposits = fixedpoint.NewAmount(market.TotalDeposits.Sub(amount))
		vault.CirculatingShares = fixedpoint.NewAmount(vault.CirculatingShares.Sub(sharesIn))

		if e := s.marketStore.Update(ctx, tx, market); e != nil {
			return e
		}

		return s.vaultStore.Update(ctx, tx, vault)
	})
	if err != nil {
		return math.ZeroInt(), err
	}

	return amount, nil
}

func (s *vaultService) CollateralValueUSD(ctx context.Context, lstMarket *core.Market, vault *core.Vault, lstAmount math.Int) (math.Int, error) {
	price, e := s.priceSrv.GetPrice(ctx, lstMarket.AssetID)
	if e != nil {
		return math.ZeroInt(), e
	}

	return lever.CollateralUSDFromLST(lstAmount, lstMarket.TotalDeposits.Int, vault.CirculatingShares.Int, price), nil
}
