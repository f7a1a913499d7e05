// Package matchworker runs the in-process match queue consumer as a background service.
package matchworker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/metrics"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/statsd"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/service"
)

// Queue is the subset of service.MatchQueue driven by the runner.
type Queue interface {
	Run(ctx context.Context) error
	Depth() int
	Capacity() int
}

// Options holds the dependencies for creating a Runner.
type Options struct {
	Queue   Queue
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// Runner consumes the match queue until its context is cancelled.
type Runner struct {
	queue   Queue
	logger  *slog.Logger
	metrics statsd.Sink
}

var _ Queue = (*service.MatchQueue)(nil)

// NewRunner creates a new match worker runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Queue == nil {
		return nil, errors.New("match queue is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		queue:   opts.Queue,
		logger:  logger.With("component", "match_worker"),
		metrics: opts.Metrics,
	}, nil
}

// Run blocks until ctx is cancelled and the consumer has drained its current job.
// Tasks still queued at that point are reported and left pending.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting match worker", "capacity", r.queue.Capacity())
	err := r.queue.Run(ctx)

	pending := r.queue.Depth()
	metrics.EmitQueueDepth(r.metrics, pending, r.queue.Capacity())
	if pending > 0 {
		r.logger.Warn("match worker stopped with queued jobs", "pending", pending)
	} else {
		r.logger.Info("match worker stopped")
	}
	return err
}
