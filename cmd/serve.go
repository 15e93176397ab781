package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmhub-client/internal/collector"
	"farmhub-client/internal/farmhub"
	"farmhub-client/internal/poller"
	"farmhub-client/internal/state"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd polls the configured targets in the background and serves the results
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll sensors periodically and serve the latest values as JSON and Prometheus metrics",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("targets", "", "Device/sensor pairs to poll, e.g. 1234:2221,1234:2213")
	serveCmd.Flags().Duration("interval", 5*time.Minute, "Interval between poll runs")
	serveCmd.Flags().Duration("window", poller.DefaultWindow, "How far back each poll queries")
	serveCmd.Flags().String("listen", ":9108", "Address to serve /status and /metrics on")

	_ = viper.BindPFlag("targets", serveCmd.Flags().Lookup("targets"))
	_ = viper.BindPFlag("interval", serveCmd.Flags().Lookup("interval"))
	_ = viper.BindPFlag("window", serveCmd.Flags().Lookup("window"))
	_ = viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

// StatusHandler serves the latest poll summary as JSON.
func StatusHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state.Get()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func newServeMux(logger *slog.Logger) *http.ServeMux {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collector.New(logger))

	mux := http.NewServeMux()
	mux.Handle("/status", StatusHandler())
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}

func runServe(cmd *cobra.Command, args []string) error {
	interval := viper.GetDuration("interval")
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}
	targets, err := poller.ParseTargets(viper.GetString("targets"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadClientConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()
	client := farmhub.New(cfg)
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	addr := viper.GetString("listen")
	server := &http.Server{
		Addr:         addr,
		Handler:      newServeMux(logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Info("Serving status and metrics", "address", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	opts := poller.Options{
		Targets:  targets,
		Window:   viper.GetDuration("window"),
		Location: cfg.Location,
	}
	for {
		select {
		case <-ctx.Done():
			logger.Info("Received interrupt, stopping poller")
			return nil
		default:
		}

		logger.Info("Starting poll run", "targets", len(targets))
		summary, err := poller.Run(ctx, client, opts)
		state.Update(summary)
		switch {
		case err != nil:
			logger.Error("Poll run failed", "error", err, "duration", summary.Duration)
		case len(summary.Errors) > 0:
			logger.Warn("Finished poll run with errors", "checked", summary.TargetsChecked, "values", len(summary.Values), "duration", summary.Duration)
			for _, e := range summary.Errors {
				logger.Warn("Poll error", "error", e)
			}
		default:
			logger.Info("Finished poll run", "checked", summary.TargetsChecked, "values", len(summary.Values), "duration", summary.Duration)
		}

		if err != nil && farmhub.IsUnauthorized(err) {
			logger.Info("Session rejected, logging in again")
			if err := client.Connect(ctx); err != nil {
				logger.Error("Failed to reconnect", "error", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}
