package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
)

// multipartOverhead is the allowance for multipart framing on top of the file limit.
const multipartOverhead = 1 << 20

// MatchSubmitter accepts resumes for asynchronous matching.
type MatchSubmitter interface {
	Enqueue(ctx context.Context, upload model.ResumeUpload) (*model.MatchJob, error)
}

// MatchStatusReader reports match job status to the job's owner.
type MatchStatusReader interface {
	Status(ctx context.Context, userID, jobID string) (*model.MatchJob, error)
}

// MatchResultsReader serves and clears a user's cached ranked list.
type MatchResultsReader interface {
	Page(ctx context.Context, req model.MatchResultsPageRequest) (*model.MatchResultsPage, error)
	Clear(ctx context.Context, userID string) (bool, error)
}

// MatchHandlers provides HTTP handlers for resume upload, job status and results.
type MatchHandlers struct {
	Queue          MatchSubmitter
	Status         MatchStatusReader
	Results        MatchResultsReader
	MaxUploadBytes int64
	Logger         *slog.Logger
}

type matchJobAccepted struct {
	JobID string `json:"job_id"`
}

type matchJobStatus struct {
	JobID  string               `json:"job_id"`
	Status model.MatchJobStatus `json:"status"`
	Error  *string              `json:"error"`
}

// Upload handles POST /api/match/upload. The resume is read from the multipart
// field "file"; the job id is returned immediately with 202 Accepted.
func (h *MatchHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = model.MaxResumeBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	upload, err := readResumeUpload(r, limit)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	upload.UserID = UserIDFromContext(r.Context())

	job, err := h.Queue.Enqueue(r.Context(), upload)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusAccepted, matchJobAccepted{JobID: job.ID})
}

// readResumeUpload extracts the uploaded file. It reads at most limit+1 bytes so the
// queue's size check can reject oversized files without buffering them whole.
func readResumeUpload(r *http.Request, limit int64) (model.ResumeUpload, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return model.ResumeUpload{}, apperrors.ValidationField("file",
				fmt.Sprintf("file too large (max %d MB)", limit>>20))
		case errors.Is(err, http.ErrMissingFile):
			return model.ResumeUpload{}, apperrors.ValidationField("file", "no file provided")
		default:
			return model.ResumeUpload{}, apperrors.ValidationField("file", "invalid multipart form")
		}
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return model.ResumeUpload{}, apperrors.ValidationField("file", "could not read uploaded file")
	}
	return model.ResumeUpload{Filename: header.Filename, Content: content}, nil
}

// GetStatus handles GET /api/match/status/{id}. Jobs owned by other users are
// indistinguishable from unknown ids.
func (h *MatchHandlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	job, err := h.Status.Status(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, matchJobStatus{JobID: job.ID, Status: job.Status, Error: job.Error})
}

// GetResults handles GET /api/match/results?cursor=&limit=&dir=.
func (h *MatchHandlers) GetResults(w http.ResponseWriter, r *http.Request) {
	params, err := parsePageParams(r)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}

	page, err := h.Results.Page(r.Context(), model.MatchResultsPageRequest{
		UserID:    UserIDFromContext(r.Context()),
		Cursor:    params.Cursor,
		Direction: params.Direction,
		Limit:     params.Limit,
	})
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// ClearResults handles DELETE /api/match/results. Clearing an empty cache succeeds.
func (h *MatchHandlers) ClearResults(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Results.Clear(r.Context(), UserIDFromContext(r.Context())); err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
