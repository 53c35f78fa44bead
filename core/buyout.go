package core

import (
	"context"

	"cosmossdk.io/math"

	"lever/internal/lever"
)

// BufferedBuyoutQuote is a buyout quote plus the padded amounts a caller
// submits: the buffer protects against price and debt drift between quote
// and execution, the settlement layer refunds any excess.
type BufferedBuyoutQuote struct {
	lever.BuyoutQuote
	BufferedPremiumTokens math.Int `json:"buffered_premium_tokens"`
	BufferedRepayTokens   math.Int `json:"buffered_repay_tokens"`
}

// IBuyoutService buyout pricing interface
type IBuyoutService interface {
	Quote(ctx context.Context, market *Market, borrow *Borrow, collateralLST math.Int) (*lever.BuyoutQuote, error)
	QuoteWithBuffer(ctx context.Context, market *Market, borrow *Borrow, collateralLST math.Int) (*BufferedBuyoutQuote, error)
}
