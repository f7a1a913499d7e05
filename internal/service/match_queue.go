package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/metrics"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/statsd"
)

const (
	defaultMatchQueueCapacity = 100
	defaultMatchJobTimeout    = 3 * time.Minute
)

// ErrMatchQueueRunning is returned by Start when the consumer is already running.
var ErrMatchQueueRunning = errors.New("match queue is already running")

// MatchTask is one queued resume awaiting processing.
type MatchTask struct {
	JobID      string
	UserID     string
	Filename   string
	Content    []byte
	EnqueuedAt time.Time
}

// MatchTaskProcessor drives one task to a terminal job status.
type MatchTaskProcessor interface {
	Process(ctx context.Context, task MatchTask) error
}

// MatchQueueOptions groups dependencies for MatchQueue.
type MatchQueueOptions struct {
	Jobs           core.MatchJobRepository // Required: job status persistence
	Processor      MatchTaskProcessor      // Required: runs each task
	Capacity       int                     // Optional: queued tasks behind the running one (default 100)
	JobTimeout     time.Duration           // Optional: per-task deadline (default 3m)
	MaxUploadBytes int64                   // Optional: defaults to model.MaxResumeBytes
	Logger         *slog.Logger            // Optional: structured logger
	Metrics        statsd.Sink             // Optional: metrics sink
	NewID          func() string           // Optional: job id generator (default uuid)
}

// MatchQueue is the in-process FIFO between the upload endpoint and the match worker.
//
// Enqueue persists a pending job before the task is handed to the channel, so a status
// poll can never observe a job the worker does not know about. A single consumer
// goroutine drains the channel in order. Tasks still queued when the consumer stops
// are lost and their jobs stay pending.
type MatchQueue struct {
	jobs       core.MatchJobRepository
	processor  MatchTaskProcessor
	tasks      chan MatchTask
	jobTimeout time.Duration
	maxBytes   int64
	newID      func() string
	logger     *slog.Logger
	metrics    statsd.Sink

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMatchQueue constructs a stopped MatchQueue.
func NewMatchQueue(opts MatchQueueOptions) (*MatchQueue, error) {
	if opts.Jobs == nil {
		return nil, errors.New("MatchJobRepository is required")
	}
	if opts.Processor == nil {
		return nil, errors.New("MatchTaskProcessor is required")
	}

	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = defaultMatchQueueCapacity
	}
	timeout := opts.JobTimeout
	if timeout <= 0 {
		timeout = defaultMatchJobTimeout
	}
	maxBytes := opts.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = model.MaxResumeBytes
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &MatchQueue{
		jobs:       opts.Jobs,
		processor:  opts.Processor,
		tasks:      make(chan MatchTask, capacity),
		jobTimeout: timeout,
		maxBytes:   maxBytes,
		newID:      newID,
		logger:     logger.With("component", "match_queue"),
		metrics:    opts.Metrics,
	}, nil
}

// Enqueue validates the upload, persists a pending job and queues it for the worker.
// Validation failures are reported before anything is written.
func (q *MatchQueue) Enqueue(ctx context.Context, upload model.ResumeUpload) (*model.MatchJob, error) {
	if err := q.validateUpload(upload); err != nil {
		return nil, err
	}
	if !q.Running() {
		return nil, apperrors.Unavailable("match worker is not running")
	}

	id := q.newID()
	job, err := q.jobs.Create(ctx, id, upload.UserID)
	if err != nil {
		return nil, fmt.Errorf("create match job: %w", err)
	}

	task := MatchTask{
		JobID:      job.ID,
		UserID:     upload.UserID,
		Filename:   strings.TrimSpace(upload.Filename),
		Content:    upload.Content,
		EnqueuedAt: time.Now(),
	}

	select {
	case q.tasks <- task:
	default:
		const msg = "match queue is full"
		recordJobFailure(ctx, q.jobs, q.logger, job.ID, msg)
		metrics.EmitMatchJob(q.metrics, metrics.MatchJobMetric{
			Transition: "enqueue",
			Result:     metrics.ResultError,
			Err:        apperrors.Unavailable(msg),
		})
		return nil, apperrors.Unavailable(msg)
	}

	metrics.EmitMatchJob(q.metrics, metrics.MatchJobMetric{Transition: "enqueue", Result: metrics.ResultSuccess})
	metrics.EmitQueueDepth(q.metrics, q.Depth(), q.Capacity())
	q.logger.InfoContext(ctx, "match job queued",
		"job_id", job.ID,
		"user_id", upload.UserID,
		"bytes", len(upload.Content),
		"depth", q.Depth(),
	)
	return job, nil
}

func (q *MatchQueue) validateUpload(upload model.ResumeUpload) error {
	if strings.TrimSpace(upload.UserID) == "" {
		return apperrors.Unauthorized("missing user identity")
	}
	name := strings.TrimSpace(upload.Filename)
	if name == "" {
		return apperrors.ValidationField("file", "no file uploaded")
	}
	if len(upload.Content) == 0 {
		return apperrors.ValidationField("file", "uploaded file is empty")
	}
	if int64(len(upload.Content)) > q.maxBytes {
		return apperrors.ValidationField("file",
			fmt.Sprintf("file exceeds the %d MB limit", q.maxBytes>>20))
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(model.AllowedResumeExtensions(), ext) {
		return apperrors.ValidationField("file", fmt.Sprintf(
			"unsupported file type %q (allowed: %s)",
			ext, strings.Join(model.AllowedResumeExtensions(), ", "),
		))
	}
	return nil
}

// Start launches the consumer goroutine. It stops when ctx is cancelled or Stop is called.
func (q *MatchQueue) Start(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return ErrMatchQueueRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	q.done = make(chan struct{})
	q.running = true

	go q.consume(runCtx, q.done)
	q.logger.InfoContext(ctx, "match queue started", "capacity", q.Capacity(), "job_timeout", q.jobTimeout)
	return nil
}

// Stop cancels the consumer and waits for it to exit or for ctx to expire. The job in
// flight sees a cancelled context and is recorded as failed.
func (q *MatchQueue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return nil
	}
	cancel, done := q.cancel, q.done
	q.mu.Unlock()

	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for match queue to stop: %w", ctx.Err())
	}
}

// Run starts the consumer and blocks until ctx is cancelled and the consumer has exited.
func (q *MatchQueue) Run(ctx context.Context) error {
	if err := q.Start(ctx); err != nil {
		return err
	}
	q.mu.Lock()
	done := q.done
	q.mu.Unlock()
	<-done
	return nil
}

// Running reports whether the consumer is accepting work.
func (q *MatchQueue) Running() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.running
}

// Depth returns the number of queued tasks.
func (q *MatchQueue) Depth() int { return len(q.tasks) }

// Capacity returns the queue bound.
func (q *MatchQueue) Capacity() int { return cap(q.tasks) }

func (q *MatchQueue) consume(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		q.mu.Lock()
		q.running = false
		q.mu.Unlock()
	}()

	for {
		if ctx.Err() != nil {
			q.logger.Info("match queue stopping", "pending", q.Depth(), "reason", ctx.Err())
			return
		}
		select {
		case <-ctx.Done():
			continue
		case task := <-q.tasks:
			metrics.EmitQueueDepth(q.metrics, q.Depth(), q.Capacity())
			q.runTask(ctx, task)
		}
	}
}

func (q *MatchQueue) runTask(ctx context.Context, task MatchTask) {
	jobCtx, cancel := context.WithTimeout(ctx, q.jobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			q.logger.ErrorContext(ctx, "match job panicked",
				"job_id", task.JobID,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			recordJobFailure(ctx, q.jobs, q.logger, task.JobID, fmt.Sprintf("internal error: %v", r))
			metrics.EmitMatchJob(q.metrics, metrics.MatchJobMetric{
				Transition: string(model.MatchJobFailed),
				Result:     metrics.ResultError,
				Err:        fmt.Errorf("panic: %v", r),
			})
		}
	}()

	if err := q.processor.Process(jobCtx, task); err != nil {
		level := slog.LevelWarn
		if isContextCancellation(err) {
			level = slog.LevelInfo
		}
		q.logger.Log(ctx, level, "match job failed", "job_id", task.JobID, "error", err)
	}
}
