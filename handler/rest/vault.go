package rest

import (
	"errors"
	"net/http"
	"strings"

	"cosmossdk.io/math"
	"github.com/go-chi/chi"

	"lever/core"
	"lever/handler/codes"
	"lever/handler/param"
	"lever/handler/render"
	"lever/handler/views"
)

func vaultHandler(marketStr core.IMarketStore, vaultStr core.IVaultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
		market, e := marketStr.FindBySymbol(ctx, symbol)
		if e != nil {
			render.NotFoundRequest(w, e)
			return
		}

		vault, e := vaultStr.Find(ctx, market.AssetID)
		if e != nil {
			render.NotFoundRequest(w, e)
			return
		}

		render.JSON(w, &views.Vault{
			Vault:         *vault,
			TotalDeposits: market.TotalDeposits.Int,
			AvailableCash: market.TotalDeposits.Sub(market.TotalBorrows.Int),
		})
	}
}

func vaultQuoteHandler(marketStr core.IMarketStore, vaultStr core.IVaultStore, vaultSrv core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Symbol string `json:"symbol"`
			Side   string `json:"side"`
			Amount string `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, ok := math.NewIntFromString(params.Amount)
		if !ok || !amount.IsPositive() {
			render.BadRequest(w, errors.New("invalid amount"))
			return
		}

		market, e := marketStr.FindBySymbol(ctx, strings.ToUpper(params.Symbol))
		if e != nil {
			render.NotFoundRequest(w, e)
			return
		}

		vault, e := vaultStr.Find(ctx, market.AssetID)
		if e != nil {
			render.NotFoundRequest(w, e)
			return
		}

		switch strings.ToLower(params.Side) {
		case "deposit":
			render.JSON(w, &views.VaultQuote{
				Side:      "deposit",
				AmountIn:  amount,
				AmountOut: vaultSrv.SharesDue(ctx, market, vault, amount),
			})
		case "redeem":
			out, e := vaultSrv.PreviewRedeem(ctx, market, vault, amount)
			if e != nil {
				render.Error(w, codes.From(e))
				return
			}

			render.JSON(w, &views.VaultQuote{
				Side:      "redeem",
				AmountIn:  amount,
				AmountOut: out,
			})
		default:
			render.BadRequest(w, errors.New("invalid side"))
		}
	}
}
