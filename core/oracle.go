package core

import (
	"context"
	"time"

	"cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"lever/pkg/fixedpoint"
)

// Price is one oracle observation: the asset's price in micro-USD at
// UpdatedAt. The pricing core never reads prices directly, it receives them
// through IPriceOracleService at call time.
type Price struct {
	ID            uint64            `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID       string            `sql:"size:36;unique_index:price_asset_idx" json:"asset_id"`
	PriceMicroUSD fixedpoint.Amount `sql:"type:varchar(80)" json:"price_micro_usd"`
	UpdatedAt     time.Time         `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Save(ctx context.Context, tx *db.DB, price *Price) error
	Find(ctx context.Context, assetID string) (*Price, error)
	All(ctx context.Context) ([]*Price, error)
}

// IPriceOracleService serves micro-USD prices through an explicit
// timestamped cache with a staleness threshold. GetPrice fails with
// ErrStalePrice when the freshest observation is older than the threshold.
type IPriceOracleService interface {
	GetPrice(ctx context.Context, assetID string) (math.Int, error)
	PutPrice(ctx context.Context, assetID string, priceMicroUSD math.Int, observedAt time.Time) error
	Invalidate(ctx context.Context, assetID string)
}
