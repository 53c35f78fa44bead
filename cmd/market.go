package cmd

import (
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"lever/core"
	"lever/internal/lever"
	"lever/pkg/fixedpoint"
)

// command for listing a new market: seeds the market row at the genesis
// accrual state together with its empty vault.
var marketAddCmd = &cobra.Command{
	Use:   "market-add <symbol> <asset-id> <lst-asset-id>",
	Short: "list a new lending market",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		marketStore := provideMarketStore(database)
		vaultStore := provideVaultStore(database)

		flags := cmd.Flags()
		bps := func(name string) uint64 {
			v, _ := flags.GetString(name)
			return cast.ToUint64(v)
		}

		market := &core.Market{
			AssetID:    args[1],
			Symbol:     args[0],
			LSTAssetID: args[2],

			BaseBps:       bps("base"),
			UtilCapBps:    bps("util-cap"),
			KinkNormBps:   bps("kink"),
			Slope1Bps:     bps("slope1"),
			Slope2Bps:     bps("slope2"),
			MaxAprBps:     bps("max-apr"),
			EmaAlphaBps:   bps("ema-alpha"),
			MaxAprStepBps: bps("max-apr-step"),

			ProtocolBps:       bps("protocol"),
			LTVBps:            bps("ltv"),
			LiqThresholdBps:   bps("liq-threshold"),
			LiqBonusBps:       bps("liq-bonus"),
			OriginationFeeBps: bps("origination-fee"),
		}
		if market.ProtocolBps > fixedpoint.MaxBps {
			cmd.PrintErrln("invalid --protocol: above 10000 bps")
			return
		}

		market.ApplyAccrual(lever.GenesisAccrualState(time.Now().Unix()))

		vault := &core.Vault{
			AssetID:           market.AssetID,
			LSTAssetID:        market.LSTAssetID,
			CirculatingShares: fixedpoint.ZeroAmount(),
		}

		err := database.Tx(func(tx *db.DB) error {
			if e := marketStore.Save(cmd.Context(), tx, market); e != nil {
				return e
			}

			return vaultStore.Save(cmd.Context(), tx, vault)
		})
		if err != nil {
			cmd.PrintErrln("add market error:", err)
			return
		}

		cmd.Println("market listed:", market.Symbol)
	},
}

func init() {
	rootCmd.AddCommand(marketAddCmd)

	flags := marketAddCmd.Flags()
	flags.String("base", "200", "base apr, bps")
	flags.String("util-cap", "9000", "utilization cap, bps")
	flags.String("kink", "8000", "kink on the capped utilization axis, bps")
	flags.String("slope1", "2000", "slope below the kink, bps")
	flags.String("slope2", "6000", "slope above the kink, bps")
	flags.String("max-apr", "30000", "apr hard cap, bps")
	flags.String("ema-alpha", "2000", "utilization ema weight, bps")
	flags.String("max-apr-step", "100", "max apr move per update, bps")
	flags.String("protocol", "1000", "protocol share of interest, bps")
	flags.String("ltv", "5000", "max loan to collateral value, bps")
	flags.String("liq-threshold", "6667", "liquidation threshold, bps")
	flags.String("liq-bonus", "500", "liquidator bonus, bps")
	flags.String("origination-fee", "100", "origination fee, bps")
}
