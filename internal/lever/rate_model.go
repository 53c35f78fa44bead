package lever

import (
	"cosmossdk.io/math"

	"lever/pkg/fixedpoint"
)

// RateModelType selects how the borrow APR is derived from utilization.
type RateModelType int

const (
	// RateModelKinked two-slope curve with a kink point
	RateModelKinked RateModelType = iota
	// RateModelFixed flat APR, utilization ignored
	RateModelFixed
)

// MarketRateState is the rate model input snapshot. All *Bps fields are basis
// points. KinkNormBps and UtilCapBps must lie in (0, 10000]; MaxAprBps may
// exceed 10000.
type MarketRateState struct {
	TotalDeposits math.Int
	TotalBorrows  math.Int

	BaseBps       uint64
	UtilCapBps    uint64
	KinkNormBps   uint64
	Slope1Bps     uint64
	Slope2Bps     uint64
	MaxAprBps     uint64
	EmaAlphaBps   uint64
	MaxAprStepBps uint64
	PrevAprBps    uint64
	UtilEmaBps    uint64

	Model       RateModelType
	FixedAprBps uint64
}

// RateResult carries the computed APR plus the smoothing state a caller must
// write back before the next tick.
type RateResult struct {
	AprBps         uint64
	NextPrevAprBps uint64
	NextUtilEmaBps uint64
}

// UtilizationBps returns normalized utilization in basis points, capped at
// 10000. Borrows beyond UtilCapBps of deposits never push utilization above
// the cap band.
func UtilizationBps(totalDeposits, totalBorrows math.Int, utilCapBps uint64) uint64 {
	capBorrow := fixedpoint.BpsMul(totalDeposits, utilCapBps)
	if capBorrow.IsZero() {
		return 0
	}

	capped := fixedpoint.MinInt(totalBorrows, capBorrow)
	return fixedpoint.RatioBps(capped, capBorrow).Uint64()
}

// CurrentAprBps computes the borrow APR for the next accrual slice.
//
// Integer floor division throughout; the pre and post kink branches meet
// exactly at the kink.
func CurrentAprBps(s MarketRateState) (RateResult, error) {
	if s.KinkNormBps == 0 || s.KinkNormBps > fixedpoint.MaxBps {
		return RateResult{}, ErrInvalidParameter
	}
	if s.UtilCapBps == 0 || s.UtilCapBps > fixedpoint.MaxBps {
		return RateResult{}, ErrInvalidParameter
	}
	if s.EmaAlphaBps > fixedpoint.MaxBps {
		return RateResult{}, ErrInvalidParameter
	}

	rawUtil := UtilizationBps(s.TotalDeposits, s.TotalBorrows, s.UtilCapBps)

	util := rawUtil
	if s.EmaAlphaBps > 0 {
		util = (s.EmaAlphaBps*rawUtil + (fixedpoint.MaxBps-s.EmaAlphaBps)*s.UtilEmaBps) / fixedpoint.MaxBps
	}

	var apr uint64
	switch s.Model {
	case RateModelFixed:
		apr = s.FixedAprBps
	default:
		apr = kinkedAprBps(util, s.BaseBps, s.Slope1Bps, s.Slope2Bps, s.KinkNormBps)
		if s.MaxAprBps > 0 && apr > s.MaxAprBps {
			apr = s.MaxAprBps
		}
	}

	if s.MaxAprStepBps > 0 {
		apr = limitAprStep(apr, s.PrevAprBps, s.BaseBps, s.MaxAprStepBps)
	}

	return RateResult{
		AprBps:         apr,
		NextPrevAprBps: apr,
		NextUtilEmaBps: util,
	}, nil
}

func kinkedAprBps(utilBps, baseBps, slope1Bps, slope2Bps, kinkBps uint64) uint64 {
	if utilBps <= kinkBps {
		return baseBps + slope1Bps*utilBps/kinkBps
	}

	// kinkBps == 10000 makes this branch unreachable
	return baseBps + slope1Bps + slope2Bps*(utilBps-kinkBps)/(fixedpoint.MaxBps-kinkBps)
}

// limitAprStep clamps apr to within ±step of the previous rate. A zero
// previous rate means the market has never ticked, so the base rate anchors
// the first step.
func limitAprStep(apr, prevBps, baseBps, stepBps uint64) uint64 {
	ref := prevBps
	if ref == 0 {
		ref = baseBps
	}

	if apr > ref+stepBps {
		return ref + stepBps
	}
	// the lower bound floors at zero when ref <= step
	if ref > stepBps && apr < ref-stepBps {
		return ref - stepBps
	}

	return apr
}
