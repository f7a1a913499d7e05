package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// optionalQuery returns a pointer to a trimmed query value, or nil when it is absent or blank.
func optionalQuery(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}

// pageParams holds the cursor pagination parameters shared by list endpoints.
type pageParams struct {
	Cursor    *string
	Direction model.PageDirection
	Limit     int
}

// parsePageParams reads cursor, dir and limit. Out-of-range limits are clamped.
func parsePageParams(r *http.Request) (pageParams, error) {
	dir, err := model.ParsePageDirection(r.URL.Query().Get("dir"))
	if err != nil {
		return pageParams{}, apperrors.ValidationField("dir", err.Error())
	}
	return pageParams{
		Cursor:    optionalQuery(r, "cursor"),
		Direction: dir,
		Limit:     model.ClampPageLimit(parseIntQuery(r, "limit", model.DefaultPageLimit)),
	}, nil
}
