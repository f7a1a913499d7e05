package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Sakshamyadav19/HireMe-Backend/internal/errors"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		field   string
	}{
		{
			name:    "validation with field",
			err:     apperrors.ValidationField("cursor", "invalid cursor"),
			status:  http.StatusBadRequest,
			code:    "validation",
			message: "invalid cursor",
			field:   "cursor",
		},
		{
			name:    "wrapped not found",
			err:     fmt.Errorf("lookup: %w", apperrors.NotFound("job not found")),
			status:  http.StatusNotFound,
			code:    "not_found",
			message: "job not found",
		},
		{
			name:    "unauthorized",
			err:     apperrors.Unauthorized("missing user identity"),
			status:  http.StatusUnauthorized,
			code:    "unauthorized",
			message: "missing user identity",
		},
		{
			name:    "conflict",
			err:     apperrors.Conflict("duplicate"),
			status:  http.StatusConflict,
			code:    "conflict",
			message: "duplicate",
		},
		{
			name:    "unavailable keeps message",
			err:     apperrors.Unavailable("match queue is full"),
			status:  http.StatusServiceUnavailable,
			code:    "unavailable",
			message: "match queue is full",
		},
		{
			name:    "deadline",
			err:     fmt.Errorf("query: %w", context.DeadlineExceeded),
			status:  http.StatusGatewayTimeout,
			code:    "timeout",
			message: "Gateway Timeout",
		},
		{
			name:    "plain error hides details",
			err:     errors.New("pq: connection refused"),
			status:  http.StatusInternalServerError,
			code:    "internal",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/x", nil)

			writeServiceError(w, r, nil, tt.err)

			body := requireErrorBody(t, w, tt.status, tt.code)
			assert.Equal(t, tt.message, body["message"])
			if tt.field != "" {
				assert.Equal(t, tt.field, body["field"])
			} else {
				assert.NotContains(t, body, "field")
			}
		})
	}
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"job_id":"a","extra":1}`))

	var dst saveJobRequest
	require.False(t, DecodeJSON(w, r, &dst))
	requireErrorBody(t, w, http.StatusBadRequest, "invalid_json")
}
