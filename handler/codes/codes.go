package codes

import (
	"strconv"

	"github.com/twitchtv/twirp"

	"lever/core"
	"lever/internal/lever"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"
)

// With with specified error code
func With(err error, code core.ErrorCode) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, code.String())
}

// From wraps a domain error as a twirp error carrying its api code. Unknown
// errors become internal errors with code ErrUnknown.
func From(err error) error {
	switch err {
	case core.ErrStalePrice:
		return With(twirp.NewError(twirp.FailedPrecondition, err.Error()), core.ErrCodeStalePrice)
	case core.ErrPriceNotFound:
		return With(twirp.NotFoundError(err.Error()), core.ErrCodeStalePrice)
	case core.ErrInsufficientLiquidity:
		return With(twirp.NewError(twirp.FailedPrecondition, err.Error()), core.ErrCodeInsufficientLiquidity)
	case lever.ErrRedeemExceedsShares:
		return With(twirp.InvalidArgumentError("shares", err.Error()), core.ErrInvalidAmount)
	case core.ErrInvalidAmount:
		return With(twirp.InvalidArgumentError("amount", err.Error()), core.ErrInvalidAmount)
	case lever.ErrRepayExceedsDebt:
		return With(twirp.NewError(twirp.FailedPrecondition, err.Error()), core.ErrCodeRepayExceedsDebt)
	case lever.ErrInvalidParameter:
		return With(twirp.InvalidArgumentError("params", err.Error()), core.ErrCodeInvalidParameter)
	default:
		return With(twirp.InternalErrorWith(err), core.ErrUnknown)
	}
}

// Get get error code from a twirp error, falling back to the http status
func Get(twerr twirp.Error) int {
	if meta := twerr.Meta(CustomCodeKey); meta != "" {
		if code, err := strconv.Atoi(meta); err == nil {
			return code
		}
	}

	return twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
}
