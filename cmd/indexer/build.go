package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bitmapindex/indexer/internal/container"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Index the bitmaps and write the reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log.Info("Configuration loaded successfully")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		app, err := container.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer app.Close()

		res, err := app.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), res.Summary)
		log.Info("Indexing finished successfully")
		return nil
	},
}
