// Command glucoscoped is the glucoscope HTTP service.
// It serves the assessment API, the calculators, the static web UI,
// Prometheus metrics and a health check.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/glucoscope/glucoscope/internal/api"
	"github.com/glucoscope/glucoscope/internal/assessment"
	"github.com/glucoscope/glucoscope/internal/events"
	"github.com/glucoscope/glucoscope/internal/logger"
	"github.com/glucoscope/glucoscope/internal/observability"
	"github.com/glucoscope/glucoscope/pkg/config"
	"github.com/glucoscope/glucoscope/pkg/scoring"
)

var version = "dev"

const defaultConfigPath = "glucoscope.yaml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "glucoscoped",
		Short:         "Diabetes risk assessment service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, os.Getenv)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", envOrDefault("GLUCOSCOPE_CONFIG", defaultConfigPath), "Path to YAML config file")
	return cmd
}

// loadConfig reads the YAML file (defaults when absent), then applies
// environment overrides and validates the result.
func loadConfig(path string, getenv func(string) string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	metrics := observability.NewMetrics()

	st, closeStore, err := openStore(ctx, cfg, metrics)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, err := openPublisher(cfg.Events)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close event publisher", "error", err)
		}
	}()

	svc := assessment.NewService(st, scoring.Default(), publisher, log, metrics)
	handler := api.NewHandler(svc, log, metrics).Routes(api.Options{
		StaticDir:   cfg.Server.StaticDir,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("starting glucoscoped",
			"port", cfg.Server.Port,
			"store", cfg.Store.Backend,
			"static_dir", cfg.Server.StaticDir,
			"version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openPublisher(cfg config.EventsConfig) (events.Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return events.Nop{}, nil
	}
	k, err := events.NewKafka(cfg.Brokers, cfg.Topic)
	if err != nil {
		return nil, fmt.Errorf("create event publisher: %w", err)
	}
	return k, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
