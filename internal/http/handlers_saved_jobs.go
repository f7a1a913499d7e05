package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

// SavedJobsManager manages a user's bookmarked catalog entries.
type SavedJobsManager interface {
	Save(ctx context.Context, userID, jobID string) error
	Remove(ctx context.Context, userID, jobID string) error
	List(ctx context.Context, userID string) ([]*model.SavedJob, error)
}

// SavedJobHandlers provides HTTP handlers for saved jobs.
type SavedJobHandlers struct {
	Svc    SavedJobsManager
	Logger *slog.Logger
}

type saveJobRequest struct {
	JobID string `json:"job_id"`
}

type savedJobList struct {
	Jobs []*model.CatalogEntry `json:"jobs"`
}

// List handles GET /api/saved-jobs. Entries are returned newest-saved first.
func (h *SavedJobHandlers) List(w http.ResponseWriter, r *http.Request) {
	saved, err := h.Svc.List(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}

	out := savedJobList{Jobs: make([]*model.CatalogEntry, 0, len(saved))}
	for _, s := range saved {
		if s != nil && s.Job != nil {
			out.Jobs = append(out.Jobs, s.Job)
		}
	}
	WriteJSON(w, http.StatusOK, out)
}

// Save handles POST /api/saved-jobs. Saving an already-saved job succeeds.
func (h *SavedJobHandlers) Save(w http.ResponseWriter, r *http.Request) {
	var req saveJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Svc.Save(r.Context(), UserIDFromContext(r.Context()), req.JobID); err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "saved"})
}

// Remove handles DELETE /api/saved-jobs/{id}.
func (h *SavedJobHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Remove(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
