package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"

	"lever/internal/lever"
	"lever/pkg/fixedpoint"
)

// Market is one lending market: rate model parameters, accrual state and
// liquidation parameters. All monetary columns are micro-unit big integers;
// BorrowIndex is WAD scaled.
type Market struct {
	ID         uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID    string `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	Symbol     string `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	LSTAssetID string `sql:"size:36;unique_index:lst_asset_idx" json:"lst_asset_id"`

	// rate model, all basis points
	RateModelType int    `sql:"default:0" json:"rate_model_type"`
	BaseBps       uint64 `json:"base_bps"`
	UtilCapBps    uint64 `json:"util_cap_bps"`
	KinkNormBps   uint64 `json:"kink_norm_bps"`
	Slope1Bps     uint64 `json:"slope1_bps"`
	Slope2Bps     uint64 `json:"slope2_bps"`
	// MaxAprBps may exceed 10000
	MaxAprBps     uint64 `json:"max_apr_bps"`
	EmaAlphaBps   uint64 `json:"ema_alpha_bps"`
	MaxAprStepBps uint64 `json:"max_apr_step_bps"`
	PrevAprBps    uint64 `json:"prev_apr_bps"`
	UtilEmaBps    uint64 `json:"util_ema_bps"`
	FixedAprBps   uint64 `json:"fixed_apr_bps"`

	// accrual state
	TotalDeposits fixedpoint.Amount `sql:"type:varchar(80)" json:"total_deposits"`
	TotalBorrows  fixedpoint.Amount `sql:"type:varchar(80)" json:"total_borrows"`
	FeePool       fixedpoint.Amount `sql:"type:varchar(80)" json:"fee_pool"`
	BorrowIndex   fixedpoint.Amount `sql:"type:varchar(80)" json:"borrow_index"`
	LastAccrualTs int64             `json:"last_accrual_ts"`
	ProtocolBps   uint64            `json:"protocol_bps"`

	// risk parameters
	LTVBps            uint64 `json:"ltv_bps"`
	LiqThresholdBps   uint64 `json:"liq_threshold_bps"`
	LiqBonusBps       uint64 `json:"liq_bonus_bps"`
	OriginationFeeBps uint64 `json:"origination_fee_bps"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// RateState snapshot consumed by the rate model
func (m *Market) RateState() lever.MarketRateState {
	return lever.MarketRateState{
		TotalDeposits: m.TotalDeposits.Int,
		TotalBorrows:  m.TotalBorrows.Int,
		BaseBps:       m.BaseBps,
		UtilCapBps:    m.UtilCapBps,
		KinkNormBps:   m.KinkNormBps,
		Slope1Bps:     m.Slope1Bps,
		Slope2Bps:     m.Slope2Bps,
		MaxAprBps:     m.MaxAprBps,
		EmaAlphaBps:   m.EmaAlphaBps,
		MaxAprStepBps: m.MaxAprStepBps,
		PrevAprBps:    m.PrevAprBps,
		UtilEmaBps:    m.UtilEmaBps,
		Model:         lever.RateModelType(m.RateModelType),
		FixedAprBps:   m.FixedAprBps,
	}
}

// AccrualState snapshot consumed by the accrual engine
func (m *Market) AccrualState() lever.AccrualState {
	return lever.AccrualState{
		TotalBorrows:  m.TotalBorrows.Int,
		TotalDeposits: m.TotalDeposits.Int,
		FeePool:       m.FeePool.Int,
		LastAccrualTs: m.LastAccrualTs,
		BorrowIndex:   m.BorrowIndex.Int,
	}
}

// ApplyAccrual writes an advanced accrual state back onto the market
func (m *Market) ApplyAccrual(s lever.AccrualState) {
	m.TotalBorrows = fixedpoint.NewAmount(s.TotalBorrows)
	m.TotalDeposits = fixedpoint.NewAmount(s.TotalDeposits)
	m.FeePool = fixedpoint.NewAmount(s.FeePool)
	m.LastAccrualTs = s.LastAccrualTs
	m.BorrowIndex = fixedpoint.NewAmount(s.BorrowIndex)
}

// IMarketStore market store interface
type IMarketStore interface {
	Save(ctx context.Context, tx *db.DB, market *Market) error
	Find(ctx context.Context, assetID string) (*Market, error)
	FindBySymbol(ctx context.Context, symbol string) (*Market, error)
	FindByLSTAsset(ctx context.Context, lstAssetID string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
	AllAsMap(ctx context.Context) (map[string]*Market, error)
	Update(ctx context.Context, tx *db.DB, market *Market) error
}

// IMarketService market interface
type IMarketService interface {
	CurrentAprBps(ctx context.Context, market *Market) (uint64, error)
	CurrentUtilizationBps(ctx context.Context, market *Market) uint64
	AccrueInterest(ctx context.Context, tx *db.DB, market *Market, now time.Time) error
}
