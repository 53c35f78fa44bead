package lever

import (
	"cosmossdk.io/math"

	"lever/pkg/fixedpoint"
)

// BorrowerSnapshot is a borrower's principal plus the market index captured
// when the principal last changed. Live debt is replayed from index growth
// since the snapshot.
type BorrowerSnapshot struct {
	Principal math.Int
	UserIndex math.Int
}

// LiveDebtFromSnapshot replays index growth onto the snapshot:
// debt = floor(principal * borrowIndex / userIndex). A zero user index means
// the snapshot predates indexing and is treated as taken at the current
// index, so the debt equals the principal.
func LiveDebtFromSnapshot(b BorrowerSnapshot, borrowIndex math.Int) math.Int {
	if b.Principal.IsNil() || b.Principal.IsZero() {
		return math.ZeroInt()
	}

	userIndex := b.UserIndex
	if userIndex.IsNil() || userIndex.IsZero() {
		userIndex = borrowIndex
	}

	return fixedpoint.MulDiv(b.Principal, borrowIndex, userIndex)
}

// ApplyBorrow crystallizes the interest accrued since the last snapshot into
// the principal, adds the new principal, and re-snapshots at the post-borrow
// index. Only the fresh principal moves total borrows: the accrued part was
// already added by market accrual.
func ApplyBorrow(principalDelta math.Int, b BorrowerSnapshot, borrowIndex, totalBorrows math.Int) (BorrowerSnapshot, math.Int) {
	next := BorrowerSnapshot{
		Principal: LiveDebtFromSnapshot(b, borrowIndex).Add(principalDelta),
		UserIndex: borrowIndex,
	}

	return next, totalBorrows.Add(principalDelta)
}

// ApplyRepay repays up to the live debt. Repaying more than the live debt
// fails with ErrRepayExceedsDebt and mutates nothing; silently clamping would
// hide a caller-side accounting bug. fullyRepaid reports a zero remainder.
func ApplyRepay(repayAmount math.Int, b BorrowerSnapshot, borrowIndex, totalBorrows math.Int) (next BorrowerSnapshot, nextTotalBorrows math.Int, fullyRepaid bool, err error) {
	liveDebt := LiveDebtFromSnapshot(b, borrowIndex)
	if repayAmount.GT(liveDebt) {
		return b, totalBorrows, false, ErrRepayExceedsDebt
	}

	remaining := liveDebt.Sub(repayAmount)
	next = BorrowerSnapshot{
		Principal: remaining,
		UserIndex: borrowIndex,
	}

	return next, totalBorrows.Sub(repayAmount), remaining.IsZero(), nil
}

// Disbursement is the outcome of a loan request check. Allowed reports
// whether the requested borrow stays within the collateral's max borrow
// capacity; nothing is mutated either way, the caller decides whether to
// proceed.
type Disbursement struct {
	CollateralUSD  math.Int
	MaxBorrowUSD   math.Int
	BorrowValueUSD math.Int
	Fee            math.Int
	Disbursed      math.Int
	Allowed        bool
}

// CalculateDisbursement checks a requested loan against the collateral's LTV
// band and computes the origination fee and net disbursement.
func CalculateDisbursement(collateralAmount, collateralPriceMicroUSD math.Int, ltvBps uint64, baseTokenPriceMicroUSD, requestedLoanAmount math.Int, originationFeeBps uint64) Disbursement {
	collateralUSD := fixedpoint.MicroUSD(collateralAmount, collateralPriceMicroUSD)
	maxBorrowUSD := fixedpoint.BpsMul(collateralUSD, ltvBps)
	borrowValueUSD := fixedpoint.MicroUSD(requestedLoanAmount, baseTokenPriceMicroUSD)

	fee := fixedpoint.BpsMul(requestedLoanAmount, originationFeeBps)

	return Disbursement{
		CollateralUSD:  collateralUSD,
		MaxBorrowUSD:   maxBorrowUSD,
		BorrowValueUSD: borrowValueUSD,
		Fee:            fee,
		Disbursed:      requestedLoanAmount.Sub(fee),
		Allowed:        borrowValueUSD.LTE(maxBorrowUSD),
	}
}
