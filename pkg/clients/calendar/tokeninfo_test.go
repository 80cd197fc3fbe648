package calendar_client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/pkg/commons"
)

func newVerifier(t *testing.T, handler http.HandlerFunc) (*googleTokenVerifier, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	logger, err := commons.NewApplicationLogger(commons.Name("calendar-test"))
	require.NoError(t, err)
	return &googleTokenVerifier{
		http:     resty.New().SetTimeout(2 * time.Second),
		endpoint: server.URL,
		logger:   logger,
	}, server
}

func TestVerifyAuthorizedToken(t *testing.T) {
	verifier, _ := newVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.URL.Query().Get("access_token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"scope": "openid https://www.googleapis.com/auth/calendar.readonly", "expires_in": "3599"}`))
	})

	status, err := verifier.Verify(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.True(t, status.IsAuthorized)
	assert.Equal(t, 3599, status.ExpiresIn)
}

func TestVerifyTokenWithoutCalendarScope(t *testing.T) {
	verifier, _ := newVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"scope": "openid email profile", "expires_in": "3599"}`))
	})

	status, err := verifier.Verify(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.False(t, status.IsAuthorized)
}

func TestVerifyRevokedTokenIsUnauthorizedNotError(t *testing.T) {
	verifier, _ := newVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "invalid_token", "error_description": "Invalid Value"}`))
	})

	status, err := verifier.Verify(context.Background(), "revoked")
	require.NoError(t, err)
	assert.False(t, status.IsAuthorized)
}

func TestVerifyEmptyToken(t *testing.T) {
	verifier, _ := newVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("tokeninfo must not be called for an empty token")
	})

	status, err := verifier.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, status.IsAuthorized)
}
