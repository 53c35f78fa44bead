package rest

import (
	"errors"
	"net/http"
	"strings"

	"cosmossdk.io/math"

	"lever/core"
	"lever/handler/codes"
	"lever/handler/param"
	"lever/handler/render"
)

func buyoutQuoteHandler(marketStr core.IMarketStore, borrowStr core.IBorrowStore, buyoutSrv core.IBuyoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID     string `json:"user_id"`
			Symbol     string `json:"symbol"`
			Collateral string `json:"collateral"`
			Buffered   bool   `json:"buffered"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		collateral, ok := math.NewIntFromString(params.Collateral)
		if !ok || collateral.IsNegative() {
			render.BadRequest(w, errors.New("invalid collateral"))
			return
		}

		market, e := marketStr.FindBySymbol(ctx, strings.ToUpper(params.Symbol))
		if e != nil {
			render.NotFoundRequest(w, e)
			return
		}

		borrow, e := borrowStr.Find(ctx, params.UserID, market.AssetID)
		if e != nil {
			render.Error(w, codes.From(e))
			return
		}

		if params.Buffered {
			quote, e := buyoutSrv.QuoteWithBuffer(ctx, market, borrow, collateral)
			if e != nil {
				render.Error(w, codes.From(e))
				return
			}

			render.JSON(w, quote)
			return
		}

		quote, e := buyoutSrv.Quote(ctx, market, borrow, collateral)
		if e != nil {
			render.Error(w, codes.From(e))
			return
		}

		render.JSON(w, quote)
	}
}
