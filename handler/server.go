package handler

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"

	"lever/core"
	"lever/handler/render"
	"lever/handler/rest"
)

// Server server
type Server struct {
	cfg *core.Config

	marketStore core.IMarketStore
	borrowStore core.IBorrowStore
	vaultStore  core.IVaultStore

	marketSrv      core.IMarketService
	vaultSrv       core.IVaultService
	borrowSrv      core.IBorrowService
	liquidationSrv core.ILiquidationService
	buyoutSrv      core.IBuyoutService
}

// New new server
func New(
	cfg *core.Config,
	marketStore core.IMarketStore,
	borrowStore core.IBorrowStore,
	vaultStore core.IVaultStore,
	marketSrv core.IMarketService,
	vaultSrv core.IVaultService,
	borrowSrv core.IBorrowService,
	liquidationSrv core.ILiquidationService,
	buyoutSrv core.IBuyoutService,
) Server {
	return Server{
		cfg:            cfg,
		marketStore:    marketStore,
		borrowStore:    borrowStore,
		vaultStore:     vaultStore,
		marketSrv:      marketSrv,
		vaultSrv:       vaultSrv,
		borrowSrv:      borrowSrv,
		liquidationSrv: liquidationSrv,
		buyoutSrv:      buyoutSrv,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(resetRoutePath)
	r.Use(render.WrapResponse(true))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(
		s.marketStore,
		s.borrowStore,
		s.vaultStore,
		s.marketSrv,
		s.vaultSrv,
		s.borrowSrv,
		s.liquidationSrv,
		s.buyoutSrv,
	))

	return r
}

func resetRoutePath(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c := chi.RouteContext(ctx); c != nil {
			c.RoutePath = r.URL.Path
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
