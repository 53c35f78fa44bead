package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lever/core"
	"lever/handler/rest"
	"lever/pkg/fixedpoint"
	vaultservice "lever/service/vault"
)

type stubMarketStore struct {
	core.IMarketStore
	market *core.Market
}

func (s *stubMarketStore) FindBySymbol(ctx context.Context, symbol string) (*core.Market, error) {
	if s.market != nil && s.market.Symbol == symbol {
		return s.market, nil
	}

	return nil, errors.New("market not found")
}

type stubVaultStore struct {
	core.IVaultStore
	vault *core.Vault
}

func (s *stubVaultStore) Find(ctx context.Context, assetID string) (*core.Vault, error) {
	if s.vault != nil && s.vault.AssetID == assetID {
		return s.vault, nil
	}

	return nil, errors.New("vault not found")
}

func newVaultRouter(market *core.Market, vault *core.Vault) http.Handler {
	return rest.Handle(
		&stubMarketStore{market: market},
		nil,
		&stubVaultStore{vault: vault},
		nil,
		vaultservice.New(nil, nil, nil, nil, nil),
		nil,
		nil,
		nil,
	)
}

func TestVaultRoute(t *testing.T) {
	market := &core.Market{
		AssetID:       "btc-asset",
		Symbol:        "BTC",
		TotalDeposits: fixedpoint.NewAmount(math.NewInt(100)),
		TotalBorrows:  fixedpoint.NewAmount(math.NewInt(80)),
	}
	vault := &core.Vault{
		AssetID:           "btc-asset",
		CirculatingShares: fixedpoint.NewAmount(math.NewInt(50)),
	}

	router := newVaultRouter(market, vault)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vaults/btc", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		CirculatingShares math.Int `json:"circulating_shares"`
		TotalDeposits     math.Int `json:"total_deposits"`
		AvailableCash     math.Int `json:"available_cash"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, int64(50), view.CirculatingShares.Int64())
	assert.Equal(t, int64(100), view.TotalDeposits.Int64())
	assert.Equal(t, int64(20), view.AvailableCash.Int64())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vaults/doge", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVaultQuoteRoute(t *testing.T) {
	market := &core.Market{
		AssetID:       "btc-asset",
		Symbol:        "BTC",
		TotalDeposits: fixedpoint.NewAmount(math.NewInt(5)),
		TotalBorrows:  fixedpoint.NewAmount(math.ZeroInt()),
	}
	vault := &core.Vault{
		AssetID:           "btc-asset",
		CirculatingShares: fixedpoint.NewAmount(math.NewInt(10)),
	}

	router := newVaultRouter(market, vault)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vaults/quote?symbol=btc&side=deposit&amount=100", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var quote struct {
		Side      string   `json:"side"`
		AmountOut math.Int `json:"amount_out"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, "deposit", quote.Side)
	assert.Equal(t, int64(200), quote.AmountOut.Int64())

	// redeeming the whole supply drains the pool exactly
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vaults/quote?symbol=btc&side=redeem&amount=10", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, int64(5), quote.AmountOut.Int64())

	// more shares than circulate cannot be priced
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vaults/quote?symbol=btc&side=redeem&amount=11", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vaults/quote?symbol=btc&side=stake&amount=1", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
