package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandlers_Live(t *testing.T) {
	h := &HealthHandlers{}

	t.Run("GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Live(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("HEAD has no body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Live(rec, httptest.NewRequest(http.MethodHead, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})
}

func TestHealthHandlers_Ready(t *testing.T) {
	ok := func(context.Context) error { return nil }

	t.Run("all probes pass", func(t *testing.T) {
		h := &HealthHandlers{Probes: []ReadinessProbe{
			{Name: "database", Check: ok},
			{Name: "cache", Check: ok},
		}}
		rec := httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body readinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, map[string]string{"database": "ok", "cache": "ok"}, body.Checks)
	})

	t.Run("one failing probe answers 503", func(t *testing.T) {
		h := &HealthHandlers{Probes: []ReadinessProbe{
			{Name: "database", Check: ok},
			{Name: "match_worker", Check: func(context.Context) error { return errors.New("match worker is not running") }},
		}}
		rec := httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body readinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "unavailable", body.Status)
		assert.Equal(t, "ok", body.Checks["database"])
		assert.Equal(t, "match worker is not running", body.Checks["match_worker"])
	})

	t.Run("slow probe is cut off by the timeout", func(t *testing.T) {
		h := &HealthHandlers{
			Timeout: 20 * time.Millisecond,
			Probes: []ReadinessProbe{{Name: "database", Check: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			}}},
		}
		rec := httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "deadline exceeded")
	})

	t.Run("no probes is ready", func(t *testing.T) {
		rec := httptest.NewRecorder()
		(&HealthHandlers{}).Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
