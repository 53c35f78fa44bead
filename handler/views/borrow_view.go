package views

import (
	"cosmossdk.io/math"

	"lever/core"
)

// Borrow borrow view: the stored position plus its index-adjusted live debt
type Borrow struct {
	core.Borrow
	LiveDebt math.Int `json:"live_debt"`
}
