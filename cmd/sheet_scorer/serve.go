package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/sheet-scorer/internal/server"
	"github.com/jonathan/sheet-scorer/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoring HTTP API server",
	Long:  `Start an HTTP server that exposes POST /score for scoring response sheets.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	port := a.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{Port: port}, a.engine, a.registry, ratelimit.NewLimiter(ratelimit.LoadConfig()), a.logger)
	return srv.Run(ctx)
}
