package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	domainauth "github.com/Sakshamyadav19/HireMe-Backend/internal/domain/auth"
)

// withIdentity returns r carrying an identity for userID, bypassing token verification.
func withIdentity(r *http.Request, userID string) *http.Request {
	return r.WithContext(SetIdentityInContext(r.Context(), &domainauth.Identity{UserID: userID}))
}

// staticVerifier accepts exactly one token.
type staticVerifier struct {
	token  string
	userID string
}

func (v staticVerifier) Verify(token string) (*domainauth.Identity, error) {
	if token != v.token {
		return nil, domainauth.ErrInvalidToken
	}
	return &domainauth.Identity{UserID: v.userID}, nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func requireErrorBody(t *testing.T, w *httptest.ResponseRecorder, status int, code string) map[string]any {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	body := decodeBody(t, w)
	require.Equal(t, code, body["error"])
	return body
}
