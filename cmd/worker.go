package cmd

import (
	"context"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"

	"lever/worker"
	"lever/worker/accrual"
	"lever/worker/priceoracle"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lever job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		marketStore := provideMarketStore(database)
		priceStore := providePriceStore(database)

		marketService := provideMarketService(marketStore)
		priceService := providePriceService(database, priceStore)

		jobs := []worker.IJob{
			accrual.New(provideConfig(), database, propertyStore, marketStore, marketService),
			priceoracle.New(provideConfig(), marketStore, priceService),
		}

		for _, job := range jobs {
			if err := job.Start(); err != nil {
				log.WithError(err).Fatalln("start job failed")
			}
		}

		ctx, quit := context.WithCancel(ctx)
		signal.WithContextFunc(ctx, quit)
		<-ctx.Done()

		for _, job := range jobs {
			if err := job.Stop(); err != nil {
				log.WithError(err).Errorln("stop job failed")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
