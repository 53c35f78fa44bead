package core

import (
	"context"
	"time"

	"cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"lever/internal/lever"
	"lever/pkg/fixedpoint"
)

// Borrow is a borrower's position in one market: the principal plus the
// borrow index captured when the principal last changed. Created on first
// borrow, principal drops to zero on full repayment.
type Borrow struct {
	ID            uint64            `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID        string            `sql:"size:36;unique_index:borrow_idx" json:"-"`
	AssetID       string            `sql:"size:36;unique_index:borrow_idx" json:"asset_id"`
	Principal     fixedpoint.Amount `sql:"type:varchar(80)" json:"principal"`
	InterestIndex fixedpoint.Amount `sql:"type:varchar(80)" json:"interest_index"`
	Version       int64             `sql:"default:0" json:"version"`
	CreatedAt     time.Time         `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Snapshot the pure ledger view of this position
func (b *Borrow) Snapshot() lever.BorrowerSnapshot {
	return lever.BorrowerSnapshot{
		Principal: b.Principal.Int,
		UserIndex: b.InterestIndex.Int,
	}
}

// ApplySnapshot writes an updated ledger snapshot back onto the position
func (b *Borrow) ApplySnapshot(s lever.BorrowerSnapshot) {
	b.Principal = fixedpoint.NewAmount(s.Principal)
	b.InterestIndex = fixedpoint.NewAmount(s.UserIndex)
}

// IBorrowStore borrow store interface
type IBorrowStore interface {
	Save(ctx context.Context, tx *db.DB, borrow *Borrow) error
	Find(ctx context.Context, userID, assetID string) (*Borrow, error)
	FindByUser(ctx context.Context, userID string) ([]*Borrow, error)
	FindByAssetID(ctx context.Context, assetID string) ([]*Borrow, error)
	CountOfBorrowers(ctx context.Context, assetID string) (int64, error)
	Update(ctx context.Context, tx *db.DB, borrow *Borrow) error
	All(ctx context.Context) ([]*Borrow, error)
}

// BorrowReceipt outcome of a borrow request
type BorrowReceipt struct {
	Disbursement lever.Disbursement
	Borrow       *Borrow
}

// RepayReceipt outcome of a repayment
type RepayReceipt struct {
	Borrow      *Borrow
	FullyRepaid bool
}

// IBorrowService borrow interface
type IBorrowService interface {
	LiveDebt(ctx context.Context, market *Market, borrow *Borrow) math.Int
	MaxLoanFor(ctx context.Context, market *Market, collateralLST math.Int) (math.Int, error)
	Borrow(ctx context.Context, market *Market, userID string, collateralLST, requestedLoanAmount math.Int) (*BorrowReceipt, error)
	Repay(ctx context.Context, market *Market, userID string, repayAmount math.Int) (*RepayReceipt, error)
}
