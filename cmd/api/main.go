package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"Share_Space/internal/bootstrap"
	"Share_Space/internal/config"
	"Share_Space/internal/logger"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "share",
		Short:         "Share digital space server and admin tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml)")
	root.AddCommand(serveCmd(), pendingCmd(), approveCmd(), rejectCmd(), banCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openApp loads config, builds the logger and opens the configured store.
func openApp(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Debug)
	if err != nil {
		return nil, err
	}
	store, err := bootstrap.OpenStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(ctx, cfg, store, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	log.Debug("app ready", zap.String("store", cfg.Store.Driver))
	return app, nil
}
