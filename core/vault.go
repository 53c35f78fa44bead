package core

import (
	"context"
	"time"

	"cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"lever/pkg/fixedpoint"
)

// Vault tracks the circulating LST shares of one market's deposit pool. The
// pool's total deposits live on the market row; the share price is
// totalDeposits / circulatingShares and never decreases as interest accrues.
type Vault struct {
	ID                uint64            `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID           string            `sql:"size:36;unique_index:vault_asset_idx" json:"asset_id"`
	LSTAssetID        string            `sql:"size:36;unique_index:vault_lst_idx" json:"lst_asset_id"`
	CirculatingShares fixedpoint.Amount `sql:"type:varchar(80)" json:"circulating_shares"`
	Version           int64             `sql:"default:0" json:"version"`
	CreatedAt         time.Time         `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time         `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IVaultStore vault store interface
type IVaultStore interface {
	Save(ctx context.Context, tx *db.DB, vault *Vault) error
	Find(ctx context.Context, assetID string) (*Vault, error)
	FindByLSTAsset(ctx context.Context, lstAssetID string) (*Vault, error)
	All(ctx context.Context) ([]*Vault, error)
	Update(ctx context.Context, tx *db.DB, vault *Vault) error
}

// IVaultService vault share interface
type IVaultService interface {
	SharesDue(ctx context.Context, market *Market, vault *Vault, amountIn math.Int) math.Int
	AssetDue(ctx context.Context, market *Market, vault *Vault, sharesIn math.Int) math.Int
	PreviewRedeem(ctx context.Context, market *Market, vault *Vault, sharesIn math.Int) (math.Int, error)
	Deposit(ctx context.Context, market *Market, vault *Vault, userID string, amountIn math.Int) (math.Int, error)
	Redeem(ctx context.Context, market *Market, vault *Vault, userID string, sharesIn math.Int) (math.Int, error)
	CollateralValueUSD(ctx context.Context, lstMarket *Market, vault *Vault, lstAmount math.Int) (math.Int, error)
}
