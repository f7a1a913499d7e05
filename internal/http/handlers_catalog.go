package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
)

// CatalogReader lists and fetches catalog entries.
type CatalogReader interface {
	List(ctx context.Context, req model.CatalogPageRequest) (*model.CatalogPage, error)
	Get(ctx context.Context, id string) (*model.CatalogEntry, error)
}

// CatalogHandlers provides HTTP handlers for browsing the job catalog.
type CatalogHandlers struct {
	Svc    CatalogReader
	Logger *slog.Logger
}

// List handles GET /api/jobs?cursor=&dir=&limit=&domain=.
func (h *CatalogHandlers) List(w http.ResponseWriter, r *http.Request) {
	params, err := parsePageParams(r)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}

	req := model.CatalogPageRequest{
		Cursor:    params.Cursor,
		Direction: params.Direction,
		Limit:     params.Limit,
	}
	if raw := optionalQuery(r, "domain"); raw != nil {
		d, err := model.ParseDomain(*raw)
		if err != nil {
			writeServiceError(w, r, h.Logger, apperrors.ValidationField("domain", err.Error()))
			return
		}
		req.Domain = &d
	}

	page, err := h.Svc.List(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	if page.Jobs == nil {
		page.Jobs = []*model.CatalogEntry{}
	}
	WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/jobs/{id}.
func (h *CatalogHandlers) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, entry)
}
