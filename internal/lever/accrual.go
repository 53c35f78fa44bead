package lever

import (
	"cosmossdk.io/math"

	"lever/pkg/fixedpoint"
)

// AccrualState is the per-market accounting advanced by Accrue. BorrowIndex
// is WAD scaled (fixedpoint.IndexScale) and monotonically non-decreasing; it
// starts at IndexScale at market genesis.
type AccrualState struct {
	TotalBorrows  math.Int
	TotalDeposits math.Int
	FeePool       math.Int
	LastAccrualTs int64
	BorrowIndex   math.Int
}

// GenesisAccrualState accrual state of a freshly listed market.
func GenesisAccrualState(now int64) AccrualState {
	return AccrualState{
		TotalBorrows:  math.ZeroInt(),
		TotalDeposits: math.ZeroInt(),
		FeePool:       math.ZeroInt(),
		LastAccrualTs: now,
		BorrowIndex:   fixedpoint.IndexScale,
	}
}

// Accrue advances the market across the closed slice (LastAccrualTs, now] at
// aprBps, the rate that was in effect for that slice. Callers accrue first,
// then recompute the rate for the next slice via the rate model.
//
// protocolBps above 10000 fails with ErrInvalidParameter: the depositor share
// is computed as 10000-protocolBps and an unchecked value would wrap the
// uint64 subtraction.
//
// Calling twice at the same instant is a no-op: interest within a slice is
// simple, compounding emerges from repeated slice application through the
// index update.
func Accrue(s AccrualState, now int64, aprBps, protocolBps uint64) (AccrualState, error) {
	if protocolBps > fixedpoint.MaxBps {
		return s, ErrInvalidParameter
	}

	if now <= s.LastAccrualTs {
		return s, nil
	}

	dt := now - s.LastAccrualTs

	simpleWad := fixedpoint.IndexScale.
		Mul(math.NewIntFromUint64(aprBps)).
		MulRaw(dt).
		QuoRaw(fixedpoint.SecondsPerYear).
		Quo(fixedpoint.BpsScale)

	interest := fixedpoint.MulDiv(s.TotalBorrows, simpleWad, fixedpoint.IndexScale)

	// the rounding remainder goes to the protocol, never to depositors
	depositorInterest := fixedpoint.BpsMul(interest, fixedpoint.MaxBps-protocolBps)
	protocolInterest := interest.Sub(depositorInterest)

	next := s
	next.TotalBorrows = s.TotalBorrows.Add(interest)
	next.TotalDeposits = s.TotalDeposits.Add(depositorInterest)
	next.FeePool = s.FeePool.Add(protocolInterest)
	next.LastAccrualTs = now
	next.BorrowIndex = s.BorrowIndex.Add(fixedpoint.MulDiv(s.BorrowIndex, simpleWad, fixedpoint.IndexScale))

	return next, nil
}
