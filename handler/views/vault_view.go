package views

import (
	"cosmossdk.io/math"

	"lever/core"
)

// Vault vault view: circulating shares plus the pool figures clients need to
// price them.
type Vault struct {
	core.Vault
	TotalDeposits math.Int `json:"total_deposits"`
	AvailableCash math.Int `json:"available_cash"`
}

// VaultQuote deposit or redemption quote
type VaultQuote struct {
	Side      string   `json:"side"`
	AmountIn  math.Int `json:"amount_in"`
	AmountOut math.Int `json:"amount_out"`
}
