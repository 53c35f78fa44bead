package market

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"

	"lever/core"
	"lever/internal/lever"
)

type service struct {
	marketStore core.IMarketStore
}

// New new market service
func New(marketStore core.IMarketStore) core.IMarketService {
	return &service{
		marketStore: marketStore,
	}
}

func (s *service) CurrentAprBps(ctx context.Context, market *core.Market) (uint64, error) {
	res, e := lever.CurrentAprBps(market.RateState())
	if e != nil {
		return 0, e
	}

	return res.AprBps, nil
}

func (s *service) CurrentUtilizationBps(ctx context.Context, market *core.Market) uint64 {
	return lever.UtilizationBps(market.TotalDeposits.Int, market.TotalBorrows.Int, market.UtilCapBps)
}

// AccrueInterest advances the market to now and persists it.
//
// The slice is accrued at the rate fixed at the previous tick; only then is
// the rate for the next slice recomputed from the updated totals. Accruing
// at a freshly recomputed rate would let the current utilization retroactively
// reprice the closed interval.
func (s *service) AccrueInterest(ctx context.Context, tx *db.DB, market *core.Market, now time.Time) error {
	next, e := lever.Accrue(market.AccrualState(), now.Unix(), market.PrevAprBps, market.ProtocolBps)
	if e != nil {
		return e
	}
	market.ApplyAccrual(next)

	res, e := lever.CurrentAprBps(market.RateState())
	if e != nil {
		return e
	}

	market.PrevAprBps = res.NextPrevAprBps
	market.UtilEmaBps = res.NextUtilEmaBps

	return s.marketStore.Update(ctx, tx, market)
}
