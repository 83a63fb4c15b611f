package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/busybox42/headerlens/internal/api"
	"github.com/busybox42/headerlens/internal/cache"
)

var (
	serverListen string

	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Run the headerlens HTTP API server",
		RunE:  runServer,
	}
)

func init() {
	serverCmd.Flags().StringVarP(&serverListen, "listen", "l", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	if serverListen != "" {
		cfg.Server.Listen = serverListen
	}

	store, err := cache.Factory(cache.Config{
		Type:     cfg.Cache.Type,
		Host:     cfg.Cache.Host,
		Port:     cfg.Cache.Port,
		Password: cfg.Cache.Password,
		Database: cfg.Cache.Database,
	})
	if err != nil {
		return fmt.Errorf("failed to create result cache: %w", err)
	}
	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to connect result cache: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return api.NewServer(cfg, store).Run(ctx)
}
