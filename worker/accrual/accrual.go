package accrual

import (
	"context"
	"sync"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"

	"lever/core"
	"lever/pkg/concurrency"
	"lever/worker"
)

const checkpointKey = "accrual_checkpoint"

// Worker accrual worker. Every tick it advances each market's borrow index
// and interest split to the current time, one transaction per market so a
// failing market never blocks the others.
type Worker struct {
	worker.BaseJob
	Config        *core.Config
	DB            *db.DB
	PropertyStore property.Store
	MarketStore   core.IMarketStore
	MarketService core.IMarketService
}

// New new accrual worker
func New(cfg *core.Config, database *db.DB, propertyStore property.Store, marketStore core.IMarketStore, marketService core.IMarketService) *Worker {
	job := Worker{
		Config:        cfg,
		DB:            database,
		PropertyStore: propertyStore,
		MarketStore:   marketStore,
		MarketService: marketService,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	markets, e := w.MarketStore.All(ctx)
	if e != nil {
		log.Errorln("fetch all markets error:", e)
		return e
	}

	if len(markets) <= 0 {
		return nil
	}

	now := time.Now()
	golimit := concurrency.NewGoLimit(concurrency.DefaultMax)
	wg := sync.WaitGroup{}

	for _, m := range markets {
		wg.Add(1)
		golimit.Add()
		go func(market *core.Market) {
			defer wg.Done()
			defer golimit.Done()

			err := w.DB.Tx(func(tx *db.DB) error {
				return w.MarketService.AccrueInterest(ctx, tx, market, now)
			})
			if err != nil {
				log.WithField("asset", market.AssetID).Errorln("accrue error:", err)
			}
		}(m)
	}

	wg.Wait()

	if e := w.PropertyStore.Save(ctx, checkpointKey, now.Unix()); e != nil {
		log.Errorln("save checkpoint error:", e)
	}

	return nil
}
