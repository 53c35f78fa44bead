package borrow

import (
	"context"
	"time"

	"cosmossdk.io/math"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"

	"lever/core"
	"lever/internal/lever"
	"lever/pkg/fixedpoint"
)

type borrowService struct {
	db          *db.DB
	marketStore core.IMarketStore
	borrowStore core.IBorrowStore
	vaultStore  core.IVaultStore
	priceSrv    core.IPriceOracleService
	marketSrv   core.IMarketService
}

// New new borrow service
func New(
	db *db.DB,
	marketStore core.IMarketStore,
	borrowStore core.IBorrowStore,
	vaultStore core.IVaultStore,
	priceSrv core.IPriceOracleService,
	marketSrv core.IMarketService,
) core.IBorrowService {
	return &borrowService{
		db:          db,
		marketStore: marketStore,
		borrowStore: borrowStore,
		vaultStore:  vaultStore,
		priceSrv:    priceSrv,
		marketSrv:   marketSrv,
	}
}

func (s *borrowService) LiveDebt(ctx context.Context, market *core.Market, borrow *core.Borrow) math.Int {
	return lever.LiveDebtFromSnapshot(borrow.Snapshot(), market.BorrowIndex.Int)
}

// MaxLoanFor returns the largest base token loan the given LST collateral
// supports at the market's LTV band.
func (s *borrowService) MaxLoanFor(ctx context.Context, market *core.Market, collateralLST math.Int) (math.Int, error) {
	basePrice, e := s.priceSrv.GetPrice(ctx, market.AssetID)
	if e != nil {
		return math.ZeroInt(), e
	}

	vault, e := s.vaultStore.Find(ctx, market.AssetID)
	if e != nil {
		return math.ZeroInt(), e
	}

	underlying := lever.CalculateAssetDue(collateralLST, vault.CirculatingShares.Int, market.TotalDeposits.Int)
	maxBorrowUSD := fixedpoint.BpsMul(fixedpoint.MicroUSD(underlying, basePrice), market.LTVBps)

	return fixedpoint.MulDiv(maxBorrowUSD, fixedpoint.MicroScale, basePrice), nil
}

// Borrow checks the requested loan against the LTV band and, when allowed,
// crystallizes the position at the current index and draws the new principal.
// An over-LTV request returns the receipt with Allowed false and mutates
// nothing; the caller decides whether to retry smaller.
func (s *borrowService) Borrow(ctx context.Context, market *core.Market, userID string, collateralLST, requestedLoanAmount math.Int) (*core.BorrowReceipt, error) {
	log := logger.FromContext(ctx).WithField("service", "borrow")

	if !requestedLoanAmount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	basePrice, e := s.priceSrv.GetPrice(ctx, market.AssetID)
	if e != nil {
		return nil, e
	}

	vault, e := s.vaultStore.Find(ctx, market.AssetID)
	if e != nil {
		return nil, e
	}

	// the LST collateral is valued through its underlying share of the pool
	underlying := lever.CalculateAssetDue(collateralLST, vault.CirculatingShares.Int, market.TotalDeposits.Int)

	disbursement := lever.CalculateDisbursement(
		underlying, basePrice,
		market.LTVBps,
		basePrice, requestedLoanAmount,
		market.OriginationFeeBps,
	)

	receipt := &core.BorrowReceipt{Disbursement: disbursement}
	if !disbursement.Allowed {
		log.WithField("user", userID).Debugln("borrow over ltv cap")
		return receipt, nil
	}

	err := s.db.Tx(func(tx *db.DB) error {
		if e := s.marketSrv.AccrueInterest(ctx, tx, market, time.Now()); e != nil {
			return e
		}

		borrow, created, e := s.findOrCreateBorrow(ctx, tx, userID, market)
		if e != nil {
			return e
		}

		next, totalBorrows := lever.ApplyBorrow(requestedLoanAmount, borrow.Snapshot(), market.BorrowIndex.Int, market.TotalBorrows.Int)
		borrow.ApplySnapshot(next)
		market.TotalBorrows = fixedpoint.NewAmount(totalBorrows)

		if created {
			if e := s.borrowStore.Save(ctx, tx, borrow); e != nil {
				return e
			}
		} else if e := s.borrowStore.Update(ctx, tx, borrow); e != nil {
			return e
		}

		receipt.Borrow = borrow
		return s.marketStore.Update(ctx, tx, market)
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

// Repay pays down live debt. A repay above the live debt fails with
// lever.ErrRepayExceedsDebt and mutates nothing; the caller re-queries the
// live debt and retries with a corrected amount.
func (s *borrowService) Repay(ctx context.Context, market *core.Market, userID string, repayAmount math.Int) (*core.RepayReceipt, error) {
	if !repayAmount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	receipt := &core.RepayReceipt{}
	err := s.db.Tx(func(tx *db.DB) error {
		if e := s.marketSrv.AccrueInterest(ctx, tx, market, time.Now()); e != nil {
			return e
		}

		borrow, e := s.borrowStore.Find(ctx, userID, market.AssetID)
		if e != nil {
			return e
		}

		next, totalBorrows, fullyRepaid, e := lever.ApplyRepay(repayAmount, borrow.Snapshot(), market.BorrowIndex.Int, market.TotalBorrows.Int)
		if e != nil {
			return e
		}

		borrow.ApplySnapshot(next)
		market.TotalBorrows = fixedpoint.NewAmount(totalBorrows)

		if e := s.borrowStore.Update(ctx, tx, borrow); e != nil {
			return e
		}

		receipt.Borrow = borrow
		receipt.FullyRepaid = fullyRepaid
		return s.marketStore.Update(ctx, tx, market)
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

func (s *borrowService) findOrCreateBorrow(ctx context.Context, tx *db.DB, userID string, market *core.Market) (*core.Borrow, bool, error) {
	borrow, e := s.borrowStore.Find(ctx, userID, market.AssetID)
	if e != nil {
		if !gorm.IsRecordNotFoundError(e) {
			return nil, false, e
		}

		// first borrow snapshots at the current index
		return &core.Borrow{
			UserID:        userID,
			AssetID:       market.AssetID,
			Principal:     fixedpoint.ZeroAmount(),
			InterestIndex: market.BorrowIndex,
		}, true, nil
	}

	return borrow, false, nil
}
