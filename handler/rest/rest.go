package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"lever/core"
	"lever/handler/render"
)

// Handle handle rest api request
func Handle(
	marketStore core.IMarketStore,
	borrowStore core.IBorrowStore,
	vaultStore core.IVaultStore,
	marketSrv core.IMarketService,
	vaultSrv core.IVaultService,
	borrowSrv core.IBorrowService,
	liquidationSrv core.ILiquidationService,
	buyoutSrv core.IBuyoutService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/markets/all", allMarketsHandler(marketStore, borrowStore, marketSrv))
	router.Get("/markets/{symbol}", marketHandler(marketStore, borrowStore, marketSrv))
	router.Get("/vaults/quote", vaultQuoteHandler(marketStore, vaultStore, vaultSrv))
	router.Get("/vaults/{symbol}", vaultHandler(marketStore, vaultStore))
	router.Get("/borrows", borrowHandler(marketStore, borrowStore, borrowSrv))
	router.Get("/liquidations/preview", liquidationPreviewHandler(marketStore, borrowStore, liquidationSrv))
	router.Get("/buyouts/quote", buyoutQuoteHandler(marketStore, borrowStore, buyoutSrv))

	return router
}
