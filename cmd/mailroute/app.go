package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/spetersoncode/mailroute/client"
	"github.com/spetersoncode/mailroute/internal/config"
	"github.com/spetersoncode/mailroute/internal/logging"
	"github.com/spetersoncode/mailroute/internal/metrics"
	"github.com/spetersoncode/mailroute/notify"
	"github.com/spetersoncode/mailroute/workflow"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	registry *prometheus.Registry
	engine   *workflow.Engine
}

func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.New(registry)

	retryCfg := client.DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.MaxAttempts
	gen, err := client.New(ctx, client.Config{
		Provider: cfg.ProviderID(),
		APIKey:   cfg.APIKey(),
		Model:    cfg.Model,
	},
		client.WithRetryConfig(retryCfg),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating generation client: %w", err)
	}

	sink := notify.NewWebhook(cfg.WebhookURL,
		notify.WithTimeout(cfg.WebhookTimeout),
		notify.WithLogger(logger),
		notify.WithErrorHandler(collector.NotificationFailed),
	)

	engine, err := workflow.New(gen, sink,
		workflow.WithStepTimeout(cfg.StepTimeout),
		workflow.WithLogger(logger),
		workflow.WithObserver(collector),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("mailroute configured",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"webhook", sink.URL())

	return &app{cfg: cfg, log: logger, registry: registry, engine: engine}, nil
}
