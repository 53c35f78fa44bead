package priceoracle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/math"
	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"lever/core"
	"lever/pkg/id"
	"lever/pkg/resthttp"
	"lever/worker"
)

// Ticker one quote from the price feed
type Ticker struct {
	AssetID string          `json:"asset_id"`
	Symbol  string          `json:"symbol"`
	Price   decimal.Decimal `json:"price"`
}

// Worker price oracle worker. Pulls the external feed on a timer and writes
// fresh micro-USD prices through the oracle service, which persists them and
// refreshes the read cache.
type Worker struct {
	worker.BaseJob
	Config             *core.Config
	MarketStore        core.IMarketStore
	PriceOracleService core.IPriceOracleService
}

// New new price oracle worker
func New(cfg *core.Config, marketStore core.IMarketStore, priceSrv core.IPriceOracleService) *Worker {
	job := Worker{
		Config:             cfg,
		MarketStore:        marketStore,
		PriceOracleService: priceSrv,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))

	refresh := job.Config.Oracle.RefreshSeconds
	if refresh <= 0 {
		refresh = 10
	}
	spec := fmt.Sprintf("@every %ds", refresh)
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"worker": "priceoracle",
		"trace":  id.GenTraceID(),
	})

	var (
		markets []*core.Market
		tickers map[string]*Ticker
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var e error
		markets, e = w.MarketStore.All(gctx)
		return e
	})
	g.Go(func() error {
		var e error
		tickers, e = w.pullTickers(gctx)
		return e
	})
	if e := g.Wait(); e != nil {
		log.Errorln("fetch markets or tickers error:", e)
		return e
	}

	if len(markets) <= 0 {
		return nil
	}

	observedAt := time.Now()
	wg := sync.WaitGroup{}
	for _, m := range markets {
		ticker, found := tickers[m.AssetID]
		if !found {
			log.WithField("asset", m.AssetID).Debugln("no ticker for market")
			continue
		}

		wg.Add(1)
		go func(market *core.Market, ticker *Ticker) {
			defer wg.Done()

			price, ok := microPrice(ticker.Price)
			if !ok {
				log.Errorln("invalid ticker price:", ticker.Symbol, ":", ticker.Price)
				return
			}

			if e := w.PriceOracleService.PutPrice(ctx, market.AssetID, price, observedAt); e != nil {
				log.WithField("asset", market.AssetID).Errorln("put price error:", e)
			}
		}(m, ticker)
	}

	wg.Wait()

	// the buyout asset is priced but has no market of its own
	if buyout := w.Config.App.BuyoutAssetID; buyout != "" {
		if ticker, found := tickers[buyout]; found {
			if price, ok := microPrice(ticker.Price); ok {
				if e := w.PriceOracleService.PutPrice(ctx, buyout, price, observedAt); e != nil {
					log.WithField("asset", buyout).Errorln("put price error:", e)
				}
			}
		}
	}

	return nil
}

func (w *Worker) pullTickers(ctx context.Context) (map[string]*Ticker, error) {
	var tickers []*Ticker
	if _, e := resthttp.Execute(resthttp.Request(ctx), "GET", w.Config.Oracle.EndPoint, nil, &tickers); e != nil {
		return nil, e
	}

	maps := make(map[string]*Ticker, len(tickers))
	for _, t := range tickers {
		maps[t.AssetID] = t
	}

	return maps, nil
}

// microPrice converts a decimal USD quote to integer micro-USD, truncating.
func microPrice(price decimal.Decimal) (math.Int, bool) {
	if price.LessThanOrEqual(decimal.Zero) {
		return math.ZeroInt(), false
	}

	return math.NewIntFromBigInt(price.Shift(6).BigInt()), true
}
