package views

import (
	"github.com/shopspring/decimal"

	"lever/core"
)

// Market market view. Rates are rendered as decimal fractions for clients,
// the raw basis point columns stay on the embedded market.
type Market struct {
	core.Market
	BorrowAPR       decimal.Decimal `json:"borrow_apr"`
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
	Borrowers       int64           `json:"borrowers"`
}

// RateFromBps renders basis points as a decimal fraction
func RateFromBps(bps uint64) decimal.Decimal {
	return decimal.New(int64(bps), -4)
}
