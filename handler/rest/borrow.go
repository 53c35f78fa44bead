package rest

import (
	"net/http"
	"strings"

	"lever/core"
	"lever/handler/codes"
	"lever/handler/param"
	"lever/handler/render"
	"lever/handler/views"
)

func borrowHandler(marketStr core.IMarketStore, borrowStr core.IBorrowStore, borrowSrv core.IBorrowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string `json:"user_id"`
			Symbol string `json:"symbol"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
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

		render.JSON(w, &views.Borrow{
			Borrow:   *borrow,
			LiveDebt: borrowSrv.LiveDebt(ctx, market, borrow),
		})
	}
}
