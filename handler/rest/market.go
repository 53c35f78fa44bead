package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	"lever/core"
	"lever/handler/render"
	"lever/handler/views"
)

func allMarketsHandler(marketStr core.IMarketStore, borrowStr core.IBorrowStore, marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		markets, e := marketStr.All(ctx)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		marketViews := make([]*views.Market, 0, len(markets))
		for _, m := range markets {
			marketViews = append(marketViews, getMarketView(r, m, borrowStr, marketSrv))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(marketStr core.IMarketStore, borrowStr core.IBorrowStore, marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
		market, e := marketStr.FindBySymbol(ctx, symbol)
		if e != nil {
			render.NotFoundRequest(w, e)
			return
		}

		render.JSON(w, getMarketView(r, market, borrowStr, marketSrv))
	}
}

func getMarketView(r *http.Request, market *core.Market, borrowStr core.IBorrowStore, marketSrv core.IMarketService) *views.Market {
	ctx := r.Context()

	aprBps, e := marketSrv.CurrentAprBps(ctx, market)
	if e != nil {
		aprBps = 0
	}

	utilizationBps := marketSrv.CurrentUtilizationBps(ctx, market)

	borrowers, e := borrowStr.CountOfBorrowers(ctx, market.AssetID)
	if e != nil {
		borrowers = 0
	}

	return &views.Market{
		Market:          *market,
		BorrowAPR:       views.RateFromBps(aprBps),
		UtilizationRate: views.RateFromBps(utilizationBps),
		Borrowers:       borrowers,
	}
}
