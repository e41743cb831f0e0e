package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pythia/internal/adapters/coinbase"
	"pythia/internal/adapters/config"
	"pythia/internal/adapters/errors/noop"
	"pythia/internal/adapters/errors/sentry"
	"pythia/internal/render"
	"pythia/internal/scheduler"
	"pythia/internal/services/analysis"
	"pythia/pkg/errors"
	"pythia/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Default mode: one synchronous pass, non-zero exit on any failure.
	if cfg.Scheduler.CronSpec == "" {
		if err := pipeline.Run(ctx); err != nil {
			log.ErrorWithContext(ctx, err, map[string]string{"component": "pipeline"})
			_ = errorTracker.Flush(ctx)
			_ = logger.Sync()
			os.Exit(1)
		}
		log.Infof("Analysis page written to %s", cfg.Output.Path)
		return
	}

	sched := scheduler.New(ctx, pipeline)
	if err := sched.Register(cfg.Scheduler.CronSpec); err != nil {
		log.Fatalf("Failed to register schedule: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	waitForShutdown(cancel, log)
}

// buildPipeline wires the fetcher, summarizer and renderer
func buildPipeline(cfg *config.Config) (*analysis.Pipeline, error) {
	client := coinbase.NewClient(cfg.Exchange.BaseURL, cfg.Exchange.Timeout)

	summarizer, err := analysis.NewSummarizer(
		cfg.AI.APIKey,
		cfg.Analysis.Model,
		cfg.Analysis.Prompt,
		cfg.Analysis.SampleSize,
		cfg.AI.Timeout,
	)
	if err != nil {
		return nil, err
	}

	renderer, err := render.New(cfg.Output.Path)
	if err != nil {
		return nil, err
	}

	return analysis.NewPipeline(client, summarizer, renderer, analysis.Settings{
		Symbol:      cfg.Analysis.Symbol,
		Granularity: cfg.Analysis.Granularity,
		Limit:       cfg.Analysis.Limit,
	}), nil
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// waitForShutdown blocks until SIGINT/SIGTERM
func waitForShutdown(cancel context.CancelFunc, log *logger.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Infof("Received signal %s, shutting down", sig)
	cancel()
}
