package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/procwise/procwise"
	httpAdapter "github.com/procwise/procwise/internal/adapters/http"
	"github.com/procwise/procwise/internal/cli"
	"github.com/procwise/procwise/internal/config"
	"github.com/procwise/procwise/internal/logging"
	"github.com/procwise/procwise/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the assistant in server mode, exposing the session API as JSON over HTTP with Prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		address, _ := cmd.Flags().GetString("address")

		_ = godotenv.Load()

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if address != "" {
			cfg.Server.Address = address
		}
		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		ctx := context.Background()
		assistant, cleanup, err := cli.BuildAssistant(ctx, cfg, logger,
			procwise.WithHooks(metrics.Hooks()),
		)
		if err != nil {
			fmt.Printf("Error initializing assistant: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		handler, err := httpAdapter.NewHandler(assistant,
			httpAdapter.WithGatherer(registry),
			httpAdapter.WithLogger(logger),
		)
		if err != nil {
			fmt.Printf("Error building handler: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    cfg.Server.Address,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting procwise server", "address", srv.Addr, "store", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("procwise server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("address", "a", "", "Listen address (overrides the config file)")
}
