package oracle

import (
	"context"
	"time"

	"cosmossdk.io/math"
	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"

	"lever/core"
	"lever/pkg/fixedpoint"
)

const cacheSize = 256

// Config oracle service config
type Config struct {
	// Staleness max age of a served price
	Staleness time.Duration
}

type observation struct {
	price      math.Int
	observedAt time.Time
}

type priceService struct {
	db         *db.DB
	priceStore core.IPriceStore
	cache      gcache.Cache
	staleness  time.Duration
}

// New builds the price oracle service: an explicit timestamped cache over
// the price store. Prices are refreshed by the oracle worker; the cache is
// passed by handle into call sites, never a package-level singleton.
func New(db *db.DB, priceStore core.IPriceStore, cfg Config) core.IPriceOracleService {
	staleness := cfg.Staleness
	if staleness <= 0 {
		staleness = time.Minute
	}

	return &priceService{
		db:         db,
		priceStore: priceStore,
		cache:      gcache.New(cacheSize).LRU().Build(),
		staleness:  staleness,
	}
}

func (s *priceService) GetPrice(ctx context.Context, assetID string) (math.Int, error) {
	ob, e := s.observe(ctx, assetID)
	if e != nil {
		return math.ZeroInt(), e
	}

	if time.Since(ob.observedAt) > s.staleness {
		return math.ZeroInt(), core.ErrStalePrice
	}

	return ob.price, nil
}

func (s *priceService) PutPrice(ctx context.Context, assetID string, priceMicroUSD math.Int, observedAt time.Time) error {
	err := s.db.Tx(func(tx *db.DB) error {
		return s.priceStore.Save(ctx, tx, &core.Price{
			AssetID:       assetID,
			PriceMicroUSD: fixedpoint.NewAmount(priceMicroUSD),
			UpdatedAt:     observedAt,
		})
	})
	if err != nil {
		return err
	}

	return s.cache.Set(assetID, observation{price: priceMicroUSD, observedAt: observedAt})
}

func (s *priceService) Invalidate(ctx context.Context, assetID string) {
	s.cache.Remove(assetID)
}

func (s *priceService) observe(ctx context.Context, assetID string) (observation, error) {
	if v, e := s.cache.Get(assetID); e == nil {
		if ob, ok := v.(observation); ok {
			return ob, nil
		}
	}

	price, e := s.priceStore.Find(ctx, assetID)
	if e != nil {
		if gorm.IsRecordNotFoundError(e) {
			return observation{}, core.ErrPriceNotFound
		}

		return observation{}, e
	}

	ob := observation{price: price.PriceMicroUSD.Int, observedAt: price.UpdatedAt}
	if e := s.cache.Set(assetID, ob); e != nil {
		return observation{}, e
	}

	return ob, nil
}
