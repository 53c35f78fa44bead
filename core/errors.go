package core

import (
	"errors"
	"strconv"

	"lever/internal/lever"
)

var (
	// ErrStalePrice freshest oracle observation is older than the staleness
	// threshold
	ErrStalePrice = errors.New("stale oracle price")
	// ErrPriceNotFound no oracle observation for the asset
	ErrPriceNotFound = errors.New("price not found")
	// ErrInsufficientLiquidity pool cash cannot cover the redemption
	ErrInsufficientLiquidity = lever.ErrInsufficientLiquidity
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrMarketNotFound no market
	ErrMarketNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrBorrowNotFound no borrow
	ErrBorrowNotFound ErrorCode = 100102
	// ErrVaultNotFound no vault
	ErrVaultNotFound ErrorCode = 100103
	// ErrCodeLTVExceeded borrow over the collateral cap
	ErrCodeLTVExceeded ErrorCode = 100104
	// ErrCodeInsufficientLiquidity insufficient liquidity
	ErrCodeInsufficientLiquidity ErrorCode = 100105
	// ErrCodeRepayExceedsDebt repay over live debt
	ErrCodeRepayExceedsDebt ErrorCode = 100106
	// ErrCodeStalePrice stale price
	ErrCodeStalePrice ErrorCode = 100107
	// ErrCodeNotLiquidatable position not in the liquidatable zone
	ErrCodeNotLiquidatable ErrorCode = 100108
	// ErrCodeInvalidParameter malformed market or request parameters
	ErrCodeInvalidParameter ErrorCode = 100109
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
