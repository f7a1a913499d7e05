// Package httpx provides the HTTP API for resume matching, the job catalog and saved jobs.
package httpx

import (
	"log/slog"
	"net/http"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Queue     MatchSubmitter
	Status    MatchStatusReader
	Results   MatchResultsReader
	Catalog   CatalogReader
	SavedJobs SavedJobsManager
	Identity  IdentityVerifier
	Readiness []ReadinessProbe

	// Configuration
	CookieName     string   // identity cookie (default "token")
	MaxUploadBytes int64    // resume size limit (default model.MaxResumeBytes)
	AllowedOrigins []string // CORS origins; empty disables CORS
	Logger         *slog.Logger
}

// NewRouter creates and configures the HTTP router. Every /api route requires a
// verified identity; /healthz and /readyz are public.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cookieName := services.CookieName
	if cookieName == "" {
		cookieName = "token"
	}
	maxUpload := services.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = model.MaxResumeBytes
	}

	match := &MatchHandlers{
		Queue:          services.Queue,
		Status:         services.Status,
		Results:        services.Results,
		MaxUploadBytes: maxUpload,
		Logger:         logger,
	}
	catalog := &CatalogHandlers{Svc: services.Catalog, Logger: logger}
	saved := &SavedJobHandlers{Svc: services.SavedJobs, Logger: logger}

	api := http.NewServeMux()
	api.HandleFunc("POST /api/match/upload", match.Upload)
	api.HandleFunc("GET /api/match/status/{id}", match.GetStatus)
	api.HandleFunc("GET /api/match/results", match.GetResults)
	api.HandleFunc("DELETE /api/match/results", match.ClearResults)

	api.HandleFunc("GET /api/jobs", catalog.List)
	api.HandleFunc("GET /api/jobs/{id}", catalog.Get)

	api.HandleFunc("GET /api/saved-jobs", saved.List)
	api.HandleFunc("POST /api/saved-jobs", saved.Save)
	api.HandleFunc("DELETE /api/saved-jobs/{id}", saved.Remove)

	mux := http.NewServeMux()
	health := &HealthHandlers{Probes: services.Readiness}
	mux.HandleFunc("GET /healthz", health.Live)
	mux.HandleFunc("GET /readyz", health.Ready)
	mux.Handle("/api/", RequireIdentity(services.Identity, cookieName)(api))

	var h http.Handler = mux
	h = CORS(services.AllowedOrigins)(h)
	h = Recover(logger)(h)
	h = Logging(logger)(h)
	return h
}
