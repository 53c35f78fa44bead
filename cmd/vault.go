package cmd

import (
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"
)

var vaultDepositCmd = &cobra.Command{
	Use:   "vault-deposit <symbol> <user-id> <amount>",
	Short: "deposit into a market pool and mint LST shares",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		marketStore := provideMarketStore(database)
		vaultStore := provideVaultStore(database)
		priceService := providePriceService(database, providePriceStore(database))
		marketService := provideMarketService(marketStore)
		vaultService := provideVaultService(database, marketStore, vaultStore, priceService, marketService)

		amount, ok := math.NewIntFromString(args[2])
		if !ok {
			cmd.PrintErrln("invalid amount:", args[2])
			return
		}

		market, err := marketStore.FindBySymbol(ctx, strings.ToUpper(args[0]))
		if err != nil {
			cmd.PrintErrln("find market error:", err)
			return
		}

		vault, err := vaultStore.Find(ctx, market.AssetID)
		if err != nil {
			cmd.PrintErrln("find vault error:", err)
			return
		}

		shares, err := vaultService.Deposit(ctx, market, vault, args[1], amount)
		if err != nil {
			cmd.PrintErrln("deposit error:", err)
			return
		}

		cmd.Println("shares minted:", shares.String())
	},
}

var vaultRedeemCmd = &cobra.Command{
	Use:   "vault-redeem <symbol> <user-id> <shares>",
	Short: "burn LST shares and withdraw from the pool",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		marketStore := provideMarketStore(database)
		vaultStore := provideVaultStore(database)
		priceService := providePriceService(database, providePriceStore(database))
		marketService := provideMarketService(marketStore)
		vaultService := provideVaultService(database, marketStore, vaultStore, priceService, marketService)

		shares, ok := math.NewIntFromString(args[2])
		if !ok {
			cmd.PrintErrln("invalid shares:", args[2])
			return
		}

		market, err := marketStore.FindBySymbol(ctx, strings.ToUpper(args[0]))
		if err != nil {
			cmd.PrintErrln("find market error:", err)
			return
		}

		vault, err := vaultStore.Find(ctx, market.AssetID)
		if err != nil {
			cmd.PrintErrln("find vault error:", err)
			return
		}

		amount, err := vaultService.Redeem(ctx, market, vault, args[1], shares)
		if err != nil {
			cmd.PrintErrln("redeem error:", err)
			return
		}

		cmd.Println("amount redeemed:", amount.String())
	},
}

func init() {
	rootCmd.AddCommand(vaultDepositCmd)
	rootCmd.AddCommand(vaultRedeemCmd)
}
