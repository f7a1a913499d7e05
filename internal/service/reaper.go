package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Sakshamyadav19/HireMe-Backend/config"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	obserrors "github.com/Sakshamyadav19/HireMe-Backend/internal/observability/errors"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/metrics"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/statsd"
)

// ReaperServiceOptions groups dependencies for ReaperService.
type ReaperServiceOptions struct {
	Repo    core.ReaperRepository // Required
	Config  config.ReaperConfig
	Logger  *slog.Logger // Optional
	Metrics statsd.Sink  // Optional
}

// ReaperService deletes finished match jobs once they pass their retention age.
// Pending and processing jobs are never touched.
type ReaperService struct {
	repo     core.ReaperRepository
	interval time.Duration
	batch    int
	policies []retentionPolicy
	logger   *slog.Logger
	metrics  statsd.Sink
}

// retentionPolicy is how long jobs in one terminal status are kept.
type retentionPolicy struct {
	status model.MatchJobStatus
	maxAge time.Duration
}

type pruneOutcome struct {
	status  model.MatchJobStatus
	deleted int64
	err     error
}

// NewReaperService constructs a new ReaperService.
func NewReaperService(opts ReaperServiceOptions) (*ReaperService, error) {
	if opts.Repo == nil {
		return nil, errors.New("ReaperRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "reaper_service")

	return &ReaperService{
		repo:     opts.Repo,
		interval: opts.Config.Interval,
		batch:    opts.Config.BatchSize,
		policies: []retentionPolicy{
			{status: model.MatchJobCompleted, maxAge: opts.Config.CompletedMaxAge},
			{status: model.MatchJobFailed, maxAge: opts.Config.FailedMaxAge},
		},
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// RunOnce performs a single sweep. It backs the admin CLI.
func (s *ReaperService) RunOnce(ctx context.Context) error {
	return s.sweep(ctx)
}

// Run sweeps immediately after a short random delay and then on every interval tick
// until ctx ends. A sweep error is logged and the loop keeps going. Cancellation
// returns nil; any other context error is returned.
func (s *ReaperService) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting reaper", "interval", s.interval, "batch_size", s.batch)

	if !sleepCtx(ctx, s.startDelay()) {
		return stopReason(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.sweep(ctx); err != nil && !isContextCancellation(err) {
			s.logger.ErrorContext(ctx, "reaper sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "reaper stopping", "reason", ctx.Err())
			return stopReason(ctx)
		case <-ticker.C:
		}
	}
}

// startDelay returns a random delay of up to a tenth of the interval.
func (s *ReaperService) startDelay() time.Duration {
	spread := s.interval / 10
	if spread <= 0 {
		return 0
	}
	return rand.N(spread)
}

func (s *ReaperService) sweep(ctx context.Context) error {
	start := time.Now()
	outcomes := make([]pruneOutcome, 0, len(s.policies))
	var errs []error
	for _, p := range s.policies {
		deleted, err := s.prune(ctx, p)
		outcomes = append(outcomes, pruneOutcome{status: p.status, deleted: deleted, err: err})
		if err != nil {
			errs = append(errs, fmt.Errorf("prune %s match jobs: %w", p.status, err))
		}
	}
	s.report(outcomes, time.Since(start))

	if len(errs) == 0 {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return errors.Join(errs...)
}

// prune deletes batches until one comes back empty.
func (s *ReaperService) prune(ctx context.Context, p retentionPolicy) (int64, error) {
	var total int64
	for {
		n, err := s.repo.DeleteOldMatchJobs(ctx, core.DeleteOldMatchJobsParams{
			Status:    p.status,
			MaxAge:    p.maxAge,
			BatchSize: s.batch,
		})
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return total, err
		}
	}
	if total > 0 {
		s.logger.InfoContext(ctx, "pruned match jobs", "status", p.status, "count", total, "max_age", p.maxAge)
	}
	return total, nil
}

func (s *ReaperService) report(outcomes []pruneOutcome, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}

	var total int64
	var failure error
	for _, o := range outcomes {
		total += o.deleted
		if failure == nil {
			failure = suppressContextCancellation(o.err)
		}
	}

	tags := map[string]string{"result": sweepResult(total, failure)}
	if failure != nil {
		if class := obserrors.Classify(failure); class != "" {
			tags["error_class"] = class
		}
	}
	s.metrics.Count("reaper.cleanup", 1, tags)
	s.metrics.Timing("reaper.cleanup_duration", elapsed, metrics.CloneTags(tags))

	for _, o := range outcomes {
		if o.err == nil && o.deleted > 0 {
			s.metrics.Count("reaper.match_jobs_deleted", o.deleted, map[string]string{"status": string(o.status)})
		}
	}
	if failure == nil {
		s.metrics.Gauge("reaper.last_success_epoch", float64(time.Now().Unix()), nil)
	}
}

func sweepResult(deleted int64, err error) string {
	switch {
	case err != nil:
		return metrics.ResultError
	case deleted == 0:
		return metrics.ResultNoop
	default:
		return metrics.ResultSuccess
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func stopReason(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

func isContextCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func suppressContextCancellation(err error) error {
	if isContextCancellation(err) {
		return nil
	}
	return err
}
