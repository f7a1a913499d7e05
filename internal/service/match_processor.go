package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/matching"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/metrics"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/statsd"
)

// failureWriteTimeout bounds the status write that records a failure. It runs on a
// context detached from the job so a cancelled job can still be marked failed.
const failureWriteTimeout = 5 * time.Second

// MatchProviders groups the external providers a match job calls.
type MatchProviders struct {
	Parser   core.ResumeParser // Required: resume to structured profile
	Embedder core.Embedder     // Required: meaning text to vector
	Store    core.ResumeStore  // Optional: raw upload archive
}

// MatchProcessorOptions groups dependencies for MatchProcessor.
type MatchProcessorOptions struct {
	Jobs      core.MatchJobRepository         // Required: job status persistence
	Results   core.MatchResultCacheRepository // Required: ranked list cache
	Filter    matching.CandidateFilter        // Required: structured catalog filter
	Pipeline  *matching.Pipeline              // Required: retrieval and scoring
	Providers MatchProviders
	Logger    *slog.Logger // Optional: structured logger
	Metrics   statsd.Sink  // Optional: metrics sink
}

// MatchProcessor runs one resume through parsing, embedding, filtering and ranking,
// then stores the ranked list and records the terminal job status.
type MatchProcessor struct {
	jobs     core.MatchJobRepository
	results  core.MatchResultCacheRepository
	filter   matching.CandidateFilter
	pipeline *matching.Pipeline
	parser   core.ResumeParser
	embedder core.Embedder
	store    core.ResumeStore
	logger   *slog.Logger
	metrics  statsd.Sink
}

var _ MatchTaskProcessor = (*MatchProcessor)(nil)

// NewMatchProcessor constructs a MatchProcessor.
func NewMatchProcessor(opts MatchProcessorOptions) (*MatchProcessor, error) {
	switch {
	case opts.Jobs == nil:
		return nil, errors.New("MatchJobRepository is required")
	case opts.Results == nil:
		return nil, errors.New("MatchResultCacheRepository is required")
	case opts.Filter == nil:
		return nil, errors.New("CandidateFilter is required")
	case opts.Pipeline == nil:
		return nil, errors.New("matching pipeline is required")
	case opts.Providers.Parser == nil:
		return nil, errors.New("ResumeParser is required")
	case opts.Providers.Embedder == nil:
		return nil, errors.New("embedder is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchProcessor{
		jobs:     opts.Jobs,
		results:  opts.Results,
		filter:   opts.Filter,
		pipeline: opts.Pipeline,
		parser:   opts.Providers.Parser,
		embedder: opts.Providers.Embedder,
		store:    opts.Providers.Store,
		logger:   logger.With("component", "match_processor"),
		metrics:  opts.Metrics,
	}, nil
}

// Process drives task to completed or failed. The returned error is informational:
// failures have already been recorded on the job when Process returns.
func (p *MatchProcessor) Process(ctx context.Context, task MatchTask) error {
	start := time.Now()

	claimed, err := p.jobs.UpdateStatus(ctx, model.MatchJobStatusUpdate{
		ID:     task.JobID,
		Status: model.MatchJobProcessing,
	})
	if err != nil {
		return p.fail(ctx, task, start, atStage("mark job processing", err))
	}
	if !claimed {
		p.logger.WarnContext(ctx, "match job is no longer pending; skipping", "job_id", task.JobID)
		metrics.EmitMatchJob(p.metrics, metrics.MatchJobMetric{
			Transition: string(model.MatchJobProcessing),
			Result:     metrics.ResultNoop,
		})
		return nil
	}
	if !task.EnqueuedAt.IsZero() {
		metrics.EmitMatchJob(p.metrics, metrics.MatchJobMetric{
			Transition: string(model.MatchJobProcessing),
			Result:     metrics.ResultSuccess,
			Duration:   start.Sub(task.EnqueuedAt),
		})
	}

	resp, err := p.match(ctx, task)
	if err != nil {
		return p.fail(ctx, task, start, err)
	}
	if err := p.results.Save(ctx, task.UserID, resp); err != nil {
		return p.fail(ctx, task, start, atStage("save match results", err))
	}

	updated, err := p.jobs.UpdateStatus(ctx, model.MatchJobStatusUpdate{
		ID:     task.JobID,
		Status: model.MatchJobCompleted,
	})
	if err != nil {
		return p.fail(ctx, task, start, atStage("mark job completed", err))
	}
	if !updated {
		p.logger.WarnContext(ctx, "match job left processing before completion", "job_id", task.JobID)
	}

	metrics.EmitMatchJob(p.metrics, metrics.MatchJobMetric{
		Transition: string(model.MatchJobCompleted),
		Result:     metrics.ResultSuccess,
		Duration:   time.Since(start),
	})
	p.logger.InfoContext(ctx, "match job completed",
		"job_id", task.JobID,
		"matches", resp.TotalMatches,
		"elapsed", time.Since(start),
	)
	return nil
}

func (p *MatchProcessor) match(ctx context.Context, task MatchTask) (model.MatchResponse, error) {
	p.archive(ctx, task)

	parsed, err := p.parse(ctx, task)
	if err != nil {
		return model.MatchResponse{}, err
	}
	normalizeParsedResume(&parsed)
	meaning := matching.BuildResumeMeaning(parsed)
	country := parsed.CountryPtr()

	var (
		vector []float32
		ids    []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, embedErr := p.embedder.Embed(gctx, meaning)
		if embedErr != nil {
			return atStage("embed resume", embedErr)
		}
		vector = v
		return nil
	})
	g.Go(func() error {
		got, filterErr := p.filter.Filter(gctx, p.pipeline.FilterFor(parsed.Domain, parsed.ExperienceYears, country))
		if filterErr != nil {
			return atStage("filter catalog", filterErr)
		}
		ids = got
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.MatchResponse{}, err
	}
	metrics.EmitPipelineStage(p.metrics, "filter", len(ids))

	rc := model.ResumeContext{
		ID:              model.EphemeralCandidateID,
		Domain:          parsed.Domain,
		ExperienceYears: parsed.ExperienceYears,
		Country:         country,
		Skills:          parsed.Skills,
		Embedding:       vector,
	}
	resp, err := p.pipeline.RunFiltered(ctx, rc, ids)
	if err != nil {
		return model.MatchResponse{}, atStage("rank catalog", err)
	}
	metrics.EmitPipelineStage(p.metrics, "scored", resp.TotalMatches)
	return resp, nil
}

// parse runs the parser on its own goroutine so a provider call that ignores
// cancellation cannot hold the worker past the job deadline.
func (p *MatchProcessor) parse(ctx context.Context, task MatchTask) (model.ParsedResume, error) {
	type parseResult struct {
		parsed model.ParsedResume
		err    error
	}
	ch := make(chan parseResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- parseResult{err: fmt.Errorf("resume parser panicked: %v", r)}
			}
		}()
		parsed, err := p.parser.Parse(ctx, task.Content, task.Filename)
		ch <- parseResult{parsed: parsed, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return model.ParsedResume{}, atStage("parse resume", r.err)
		}
		return r.parsed, nil
	case <-ctx.Done():
		return model.ParsedResume{}, atStage("parse resume", ctx.Err())
	}
}

func (p *MatchProcessor) archive(ctx context.Context, task MatchTask) {
	if p.store == nil {
		return
	}
	err := p.store.Put(ctx, core.ResumeObject{
		JobID:    task.JobID,
		UserID:   task.UserID,
		Filename: task.Filename,
		Content:  task.Content,
	})
	if err != nil {
		p.logger.WarnContext(ctx, "failed to archive resume", "job_id", task.JobID, "error", err)
	}
}

func (p *MatchProcessor) fail(ctx context.Context, task MatchTask, start time.Time, err error) error {
	recordJobFailure(ctx, p.jobs, p.logger, task.JobID, failureMessage(err))
	metrics.EmitMatchJob(p.metrics, metrics.MatchJobMetric{
		Transition: string(model.MatchJobFailed),
		Result:     metrics.ResultError,
		Duration:   time.Since(start),
		Err:        err,
	})
	return err
}

// stageError names the processing stage whose collaborator returned err.
type stageError struct {
	stage string
	err   error
}

func atStage(stage string, err error) error { return &stageError{stage: stage, err: err} }

func (e *stageError) Error() string { return e.stage + ": " + e.err.Error() }

func (e *stageError) Unwrap() error { return e.err }

// failureMessage is the message stored on a failed job: the collaborator's error
// text as returned, without the stage prefixes added here. The returned error
// keeps the prefixes for logs.
func failureMessage(err error) string {
	for {
		se, ok := err.(*stageError) //nolint:errorlint // only direct stage wrappers are stripped.
		if !ok {
			return err.Error()
		}
		err = se.err
	}
}

// normalizeParsedResume fills defaults the ranking stages rely on.
func normalizeParsedResume(p *model.ParsedResume) {
	if !p.Domain.Valid() {
		p.Domain = model.DefaultDomain
	}
	if p.ExperienceYears < 0 {
		p.ExperienceYears = 0
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
}

// recordJobFailure marks id failed with msg on a context detached from ctx's cancellation.
func recordJobFailure(ctx context.Context, jobs core.MatchJobRepository, logger *slog.Logger, id, msg string) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureWriteTimeout)
	defer cancel()

	updated, err := jobs.UpdateStatus(wctx, model.MatchJobStatusUpdate{
		ID:     id,
		Status: model.MatchJobFailed,
		Error:  &msg,
	})
	switch {
	case err != nil:
		logger.ErrorContext(ctx, "failed to record match job failure", "job_id", id, "error", err)
	case !updated:
		logger.WarnContext(ctx, "match job already terminal; failure not recorded", "job_id", id, "reason", msg)
	}
}
