package cmd

import (
	"time"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"

	"lever/core"
	borrowservice "lever/service/borrow"
	buyoutservice "lever/service/buyout"
	liquidationservice "lever/service/liquidation"
	marketservice "lever/service/market"
	oracleservice "lever/service/oracle"
	vaultservice "lever/service/vault"
	borrowstore "lever/store/borrow"
	marketstore "lever/store/market"
	pricestore "lever/store/price"
	vaultstore "lever/store/vault"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return marketstore.New(db)
}

func provideBorrowStore(db *db.DB) core.IBorrowStore {
	return borrowstore.New(db)
}

func provideVaultStore(db *db.DB) core.IVaultStore {
	return vaultstore.New(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return pricestore.New(db)
}

// ------------------service------------------------------------

func provideMarketService(marketStore core.IMarketStore) core.IMarketService {
	return marketservice.New(marketStore)
}

func providePriceService(db *db.DB, priceStore core.IPriceStore) core.IPriceOracleService {
	return oracleservice.New(db, priceStore, oracleservice.Config{
		Staleness: time.Duration(cfg.Oracle.StalenessSeconds) * time.Second,
	})
}

func provideVaultService(db *db.DB, marketStore core.IMarketStore, vaultStore core.IVaultStore, priceSrv core.IPriceOracleService, marketSrv core.IMarketService) core.IVaultService {
	return vaultservice.New(db, marketStore, vaultStore, priceSrv, marketSrv)
}

func provideBorrowService(db *db.DB, marketStore core.IMarketStore, borrowStore core.IBorrowStore, vaultStore core.IVaultStore, priceSrv core.IPriceOracleService, marketSrv core.IMarketService) core.IBorrowService {
	return borrowservice.New(db, marketStore, borrowStore, vaultStore, priceSrv, marketSrv)
}

func provideLiquidationService(vaultStore core.IVaultStore, priceSrv core.IPriceOracleService) core.ILiquidationService {
	return liquidationservice.New(vaultStore, priceSrv)
}

func provideBuyoutService(vaultStore core.IVaultStore, priceSrv core.IPriceOracleService) core.IBuyoutService {
	return buyoutservice.New(vaultStore, priceSrv, buyoutservice.Config{
		BuyoutAssetID: cfg.App.BuyoutAssetID,
	})
}
