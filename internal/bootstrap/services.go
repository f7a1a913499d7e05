package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sakshamyadav19/HireMe-Backend/config"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/adapters/embedder"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/adapters/jwtauth"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/adapters/resumeparser"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/adapters/resumestore"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/data"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/matching"
	httpx "github.com/Sakshamyadav19/HireMe-Backend/internal/http"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/statsd"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Queue         *service.MatchQueue
	Processor     *service.MatchProcessor
	Status        *service.MatchStatusService
	Results       *service.ResultService
	Catalog       *service.CatalogService
	SavedJobs     *service.SavedJobService
	Identity      *jwtauth.Verifier
	Readiness     []httpx.ReadinessProbe
	Observability ObservabilityContainer
}

// Close releases resources owned by the container.
func (c ServiceContainer) Close() error {
	return c.Observability.Close()
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	// MetricsSink is nil when metrics are disabled or the client failed to start.
	MetricsSink   statsd.Sink
	MetricsClient *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// Close releases the metrics socket.
func (o ObservabilityContainer) Close() error {
	return o.MetricsClient.Close()
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB        *sql.DB
	Redis     redis.UniversalClient
	Jobs      *data.MatchJobRepo
	Catalog   *data.CatalogRepo
	Index     *data.VectorIndex
	Results   *data.MatchResultCacheRepo
	SavedJobs *data.SavedJobRepo
	Cache     *data.RedisCacheRepo // nil without Redis
}

// buildObservability configures the metrics adapter.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	out := ObservabilityContainer{MetricsConfig: cfg.Metrics}
	if !cfg.Metrics.IsEnabled() {
		return out
	}

	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  cfg.Metrics.Prefix,
		Logger:  obsLogger,
	})
	if err != nil {
		obsLogger.Error("failed to initialise statsd client", "error", err)
		return out
	}
	out.MetricsClient = client
	out.MetricsSink = client
	return out
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(deps *ServiceDeps) *serviceRepositories {
	db, logger := deps.DB, deps.Logger
	repos := &serviceRepositories{
		DB:      db,
		Redis:   deps.RedisClient,
		Jobs:    data.NewMatchJobRepo(db, data.MatchJobRepoConfig{Logger: logger}),
		Catalog: data.NewCatalogRepo(db, data.CatalogRepoOptions{Logger: logger}),
		Index: data.NewVectorIndex(db, data.VectorIndexOptions{
			EfSearch:       deps.Config.Postgres.HNSWEfSearch,
			ExactScanLimit: deps.Config.Postgres.HNSWExactScanLimit,
			IterativeScan:  deps.Config.Postgres.HNSWIterativeScan,
		}),
		Results:   data.NewMatchResultCacheRepo(db, data.MatchResultCacheRepoOptions{Logger: logger}),
		SavedJobs: data.NewSavedJobRepo(db, data.SavedJobRepoOptions{Logger: logger}),
	}
	if deps.RedisClient != nil {
		repos.Cache = data.NewRedisCacheRepo(deps.RedisClient, data.WithNamespace(deps.Config.Cache.Namespace))
	}
	return repos
}

// newEmbedder builds the provider embedder, fronted by the Redis vector cache when available.
//
//nolint:ireturn // the caching decorator and the bare provider share the core.Embedder port.
func newEmbedder(repos *serviceRepositories, cfg *config.AppConfig, logger *slog.Logger) (core.Embedder, error) {
	provider, err := embedder.New(embedder.Options{Config: cfg.Embedding, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	if repos.Cache == nil {
		return provider, nil
	}
	cached, err := service.NewCachingEmbedder(service.CachingEmbedderOptions{
		Embedder: provider,
		Cache:    repos.Cache,
		TTL:      cfg.Cache.EmbeddingTTL,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create caching embedder: %w", err)
	}
	return cached, nil
}

// newResumeStore connects the upload archive, or returns a no-op store when disabled.
//
//nolint:ireturn // the archive is optional and NopStore stands in for it.
func newResumeStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (core.ResumeStore, error) {
	if !cfg.Enabled {
		return resumestore.NopStore{}, nil
	}
	store, err := resumestore.Connect(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect resume store: %w", err)
	}
	logger.InfoContext(ctx, "resume archive enabled", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return store, nil
}

func newMatchPipeline(repos *serviceRepositories, cfg config.MatchingConfig, logger *slog.Logger) (*matching.Pipeline, error) {
	pipeline, err := matching.NewPipeline(matching.PipelineOptions{
		Filter:  repos.Catalog,
		Index:   repos.Index,
		Catalog: repos.Catalog,
		Config:  cfg.Pipeline(),
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create matching pipeline: %w", err)
	}
	return pipeline, nil
}

// matchProviders groups the external providers used by the processor and catalog backfill.
type matchProviders struct {
	Parser   core.ResumeParser
	Embedder core.Embedder
	Store    core.ResumeStore
}

func buildProviders(ctx context.Context, repos *serviceRepositories, cfg *config.AppConfig, logger *slog.Logger) (matchProviders, error) {
	emb, err := newEmbedder(repos, cfg, logger)
	if err != nil {
		return matchProviders{}, err
	}
	parser, err := resumeparser.NewGeminiParser(ctx, resumeparser.GeminiParserOptions{
		Config: cfg.Parser,
		Logger: logger,
	})
	if err != nil {
		return matchProviders{}, fmt.Errorf("create resume parser: %w", err)
	}
	store, err := newResumeStore(ctx, cfg.Storage, logger)
	if err != nil {
		return matchProviders{}, err
	}
	if cfg.Embedding.APIKey == "" {
		logger.WarnContext(ctx, "embedding API key not configured; match jobs will fail until it is set")
	}
	if cfg.Parser.APIKey == "" {
		logger.WarnContext(ctx, "GEMINI_API_KEY not configured; match jobs will fail until it is set")
	}
	return matchProviders{Parser: parser, Embedder: emb, Store: store}, nil
}

type matchServicesOptions struct {
	Repos         *serviceRepositories
	Providers     matchProviders
	Config        *config.AppConfig
	Logger        *slog.Logger
	Observability ObservabilityContainer
}

func buildMatchServices(opts matchServicesOptions) (ServiceContainer, error) {
	repos, cfg, logger := opts.Repos, opts.Config, opts.Logger
	metrics := opts.Observability.MetricsSink

	pipeline, err := newMatchPipeline(repos, cfg.Matching, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	processor, err := service.NewMatchProcessor(service.MatchProcessorOptions{
		Jobs:     repos.Jobs,
		Results:  repos.Results,
		Filter:   repos.Catalog,
		Pipeline: pipeline,
		Providers: service.MatchProviders{
			Parser:   opts.Providers.Parser,
			Embedder: opts.Providers.Embedder,
			Store:    opts.Providers.Store,
		},
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create match processor: %w", err)
	}

	queue, err := service.NewMatchQueue(service.MatchQueueOptions{
		Jobs:           repos.Jobs,
		Processor:      processor,
		Capacity:       cfg.Queue.Capacity,
		JobTimeout:     cfg.Queue.JobTimeout,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		Logger:         logger,
		Metrics:        metrics,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create match queue: %w", err)
	}

	status, err := service.NewMatchStatusService(repos.Jobs)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create match status service: %w", err)
	}
	results, err := service.NewResultService(service.ResultServiceOptions{Repo: repos.Results, Logger: logger})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create result service: %w", err)
	}
	catalog, err := service.NewCatalogService(service.CatalogServiceOptions{
		Repo:     repos.Catalog,
		Embedder: opts.Providers.Embedder,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create catalog service: %w", err)
	}
	saved, err := service.NewSavedJobService(repos.SavedJobs)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create saved job service: %w", err)
	}

	return ServiceContainer{
		Queue:         queue,
		Processor:     processor,
		Status:        status,
		Results:       results,
		Catalog:       catalog,
		SavedJobs:     saved,
		Observability: opts.Observability,
	}, nil
}

// NewServices creates and wires all application services.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service dependencies are required")
	}
	if deps.DB == nil {
		return ServiceContainer{}, errors.New("database connection is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	observability := buildObservability(deps.Logger, deps.Config.Observability)
	repos := buildRepositories(deps)

	providers, err := buildProviders(ctx, repos, deps.Config, deps.Logger)
	if err != nil {
		return ServiceContainer{}, errors.Join(err, observability.Close())
	}

	services, err := buildMatchServices(matchServicesOptions{
		Repos:         repos,
		Providers:     providers,
		Config:        deps.Config,
		Logger:        deps.Logger,
		Observability: observability,
	})
	if err != nil {
		return ServiceContainer{}, errors.Join(err, observability.Close())
	}

	services.Identity, err = BuildIdentityVerifier(deps.Config.Auth)
	if err != nil {
		return ServiceContainer{}, errors.Join(err, observability.Close())
	}
	services.Readiness = buildReadinessProbes(repos, services.Queue, deps.Config.IsMatchWorkerEnabled())
	return services, nil
}

// buildReadinessProbes lists the dependencies /readyz checks. The cache probe is
// only present with Redis, the worker probe only when this process consumes the queue.
func buildReadinessProbes(repos *serviceRepositories, queue *service.MatchQueue, workerEnabled bool) []httpx.ReadinessProbe {
	probes := []httpx.ReadinessProbe{{Name: "database", Check: repos.DB.PingContext}}
	if repos.Cache != nil {
		probes = append(probes, httpx.ReadinessProbe{Name: "cache", Check: repos.Cache.Health})
	}
	if workerEnabled && queue != nil {
		probes = append(probes, httpx.ReadinessProbe{Name: "match_worker", Check: func(context.Context) error {
			if !queue.Running() {
				return errors.New("match worker is not running")
			}
			return nil
		}})
	}
	return probes
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// serviceStartupDeps groups dependencies for service startup.
type serviceStartupDeps struct {
	ctx             context.Context
	cfg             *ServiceOrchestrationConfig
	logger          *slog.Logger
	enabledServices map[config.ServiceMode]bool
	errCh           chan error
}

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	mode config.ServiceMode
	name string
	done <-chan struct{}
}

// startHTTPServerIfEnabled starts the HTTP server if enabled.
func startHTTPServerIfEnabled(deps *serviceStartupDeps) *http.Server {
	if deps == nil || deps.cfg == nil || !deps.enabledServices[config.ServiceModeHTTP] {
		return nil
	}
	return StartHTTPServer(&HTTPServerConfig{
		Config:   deps.cfg.Config,
		Services: deps.cfg.Services,
		Logger:   deps.logger,
		ErrCh:    deps.errCh,
	})
}

func launchBackground(ctx context.Context, deps *serviceStartupDeps, descriptor backgroundService) <-chan struct{} {
	if deps == nil || !deps.enabledServices[descriptor.mode] {
		return nil
	}
	logger := deps.logger
	if logger == nil {
		logger = slog.Default()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := descriptor.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", descriptor.name, err)
			select {
			case deps.errCh <- errMsg:
			case <-ctx.Done():
			default:
				logger.WarnContext(ctx, "dropping background service error", "service", descriptor.name, "error", errMsg)
			}
		}
	}()

	logger.InfoContext(ctx, "background service started", "service", descriptor.name, "mode", descriptor.mode)
	return done
}

func startBackgroundServices(deps *serviceStartupDeps, services []backgroundService) []backgroundServiceHandle {
	if deps == nil {
		return nil
	}
	handles := make([]backgroundServiceHandle, 0, len(services))

	for _, svc := range services {
		done := launchBackground(deps.ctx, deps, svc)
		if done == nil {
			continue
		}

		handles = append(handles, backgroundServiceHandle{
			mode: svc.mode,
			name: svc.name,
			done: done,
		})
	}

	return handles
}

func newMatchWorkerBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeMatchWorker,
		name: "match worker",
		start: func(ctx context.Context) error {
			if deps == nil || deps.cfg == nil {
				return nil
			}
			queue := deps.cfg.Services.Queue
			if queue == nil {
				return errors.New("match queue is not configured")
			}
			return RunMatchWorker(ctx, MatchWorkerConfig{
				Queue:   queue,
				Logger:  deps.logger,
				Metrics: deps.cfg.Services.Observability.MetricsSink,
			})
		},
	}
}

func newReaperBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeReaper,
		name: "reaper",
		start: func(ctx context.Context) error {
			if deps == nil || deps.cfg == nil {
				return nil
			}
			var reaperCfg config.ReaperConfig
			if deps.cfg.Config != nil {
				reaperCfg = deps.cfg.Config.Reaper
			}
			return RunReaper(ctx, ReaperConfig{
				DB:      deps.cfg.DB,
				Logger:  deps.logger,
				Config:  reaperCfg,
				Metrics: deps.cfg.Services.Observability.MetricsSink,
			})
		},
	}
}

func buildBackgroundServices(deps *serviceStartupDeps) []backgroundService {
	if deps == nil {
		return nil
	}
	return []backgroundService{
		newMatchWorkerBackgroundService(deps),
		newReaperBackgroundService(deps),
	}
}

// ServiceStartupResult holds the results of starting all services.
type ServiceStartupResult struct {
	HTTPServer *http.Server
	Background []backgroundServiceHandle
}

// startServices starts all enabled services and returns their completion channels.
// Background consumers start before the listener so the first upload finds a
// running worker.
func startServices(deps *serviceStartupDeps) ServiceStartupResult {
	background := startBackgroundServices(deps, buildBackgroundServices(deps))
	return ServiceStartupResult{
		HTTPServer: startHTTPServerIfEnabled(deps),
		Background: background,
	}
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	ctx := context.Background()
	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	// Determine which services are enabled
	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}
	errCh := make(chan error, errorChannelBufferSize(enabledServices))

	// Start all enabled services
	result := startServices(&serviceStartupDeps{
		ctx:             serviceCtx,
		cfg:             cfg,
		logger:          logger,
		enabledServices: enabledServices,
		errCh:           errCh,
	})

	// Wait for shutdown signal or error
	return waitForShutdown(shutdownConfig{
		ctx:             serviceCtx,
		cancel:          cancel,
		errCh:           errCh,
		httpServer:      result.HTTPServer,
		httpGracePeriod: cfg.Config.HTTP.ShutdownTimeout,
		logger:          logger,
		backgrounds:     result.Background,
	})
}

func errorChannelCapacity(enabled map[config.ServiceMode]bool) int {
	count := 0
	for _, mode := range config.ValidServiceModes() {
		if enabled[mode] {
			count++
		}
	}
	return count
}

func errorChannelBufferSize(enabled map[config.ServiceMode]bool) int {
	size := errorChannelCapacity(enabled) + 1
	if size < 1 {
		return 1
	}
	return size
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx             context.Context
	cancel          context.CancelFunc
	errCh           <-chan error
	httpServer      *http.Server
	httpGracePeriod time.Duration
	logger          *slog.Logger
	backgrounds     []backgroundServiceHandle
	signals         <-chan os.Signal // overrides OS signal delivery in tests
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := cfg.signals
	if quit == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(ch)
		quit = ch
	}

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel() // Cancel service context before waiting
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel() // Cancel service context before waiting
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop attempts to gracefully stop all services. The service context is
// already cancelled here, so the HTTP grace period hangs off a detached context.
func gracefulStop(cfg shutdownConfig) error {
	var stopErr error
	if cfg.httpServer != nil {
		stopErr = ShutdownHTTPServer(ShutdownConfig{
			Context: context.WithoutCancel(cfg.ctx),
			Server:  cfg.httpServer,
			Timeout: cfg.httpGracePeriod,
			Logger:  cfg.logger,
		})
	}

	// Wait for background services to finish
	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}

	return stopErr
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
