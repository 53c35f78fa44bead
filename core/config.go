package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config lever config
type Config struct {
	App    App       `json:"app"`
	DB     db.Config `json:"db"`
	Oracle Oracle    `json:"oracle"`
}

// App app config
type App struct {
	Location string `json:"location"`
	Port     int    `json:"port"`
	// BuyoutAssetID asset buyout premiums are paid in
	BuyoutAssetID string `json:"buyout_asset_id"`
}

// Oracle price feed config
type Oracle struct {
	EndPoint string `json:"end_point"`
	// StalenessSeconds max age of a served price
	StalenessSeconds int64 `json:"staleness_seconds"`
	// RefreshSeconds worker poll interval
	RefreshSeconds int64 `json:"refresh_seconds"`
}
