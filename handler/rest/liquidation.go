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

func liquidationPreviewHandler(marketStr core.IMarketStore, borrowStr core.IBorrowStore, liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID     string `json:"user_id"`
			Symbol     string `json:"symbol"`
			Collateral string `json:"collateral"`
			Repay      string `json:"repay"`
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

		repay, ok := math.NewIntFromString(params.Repay)
		if !ok {
			render.BadRequest(w, errors.New("invalid repay"))
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

		quote, e := liquidationSrv.Preview(ctx, market, borrow, collateral, repay)
		if e != nil {
			render.Error(w, codes.From(e))
			return
		}

		render.JSON(w, quote)
	}
}
