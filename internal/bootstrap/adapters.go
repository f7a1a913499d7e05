package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Sakshamyadav19/HireMe-Backend/config"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/adapters/matchworker"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/adapters/reaper"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/statsd"
)

// MatchWorkerConfig contains configuration for the match queue consumer.
type MatchWorkerConfig struct {
	Queue   matchworker.Queue
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// RunMatchWorker drains the match queue until ctx is cancelled.
func RunMatchWorker(ctx context.Context, cfg MatchWorkerConfig) error {
	if cfg.Queue == nil {
		return errors.New("match queue is not configured")
	}
	runner, err := matchworker.NewRunner(matchworker.Options{
		Queue:   cfg.Queue,
		Logger:  cfg.Logger,
		Metrics: cfg.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create match worker: %w", err)
	}

	return runner.Run(ctx)
}

// ReaperConfig contains configuration for reaper.
type ReaperConfig struct {
	DB      *sql.DB
	Logger  *slog.Logger
	Config  config.ReaperConfig
	Metrics statsd.Sink
}

// RunReaper starts the reaper service.
func RunReaper(ctx context.Context, cfg ReaperConfig) error {
	runner, err := reaper.NewRunner(reaper.RunnerOptions{
		DB:      cfg.DB,
		Config:  cfg.Config,
		Logger:  cfg.Logger,
		Metrics: cfg.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create reaper runner: %w", err)
	}

	return runner.Run(ctx)
}
