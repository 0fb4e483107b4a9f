package robinhood

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUpstream simulates the two endpoints the auth lifecycle touches: the
// password-grant token endpoint and the accounts endpoint used as the
// validity probe.
type fakeUpstream struct {
	server *httptest.Server

	validToken   string
	loginToken   string // token issued on successful login; empty rejects login
	loginBody    string // overrides the login response body entirely
	loginStatus  int
	loginCalls   atomic.Int64
	accountCalls atomic.Int64
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{loginStatus: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token/", func(w http.ResponseWriter, r *http.Request) {
		f.loginCalls.Add(1)
		if f.loginBody != "" {
			w.WriteHeader(f.loginStatus)
			w.Write([]byte(f.loginBody))
			return
		}
		if f.loginToken == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Unable to log in with provided credentials."}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  f.loginToken,
			"refresh_token": "refresh-" + f.loginToken,
			"token_type":    "Bearer",
		})
	})
	mux.HandleFunc("/accounts/", func(w http.ResponseWriter, r *http.Request) {
		f.accountCalls.Add(1)
		if f.validToken == "" || r.Header.Get("Authorization") != "Bearer "+f.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Invalid token."}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []any{map[string]any{
				"equity":       "25000.00",
				"cash":         "5000.00",
				"buying_power": "10000.00",
			}},
		})
	})
	mux.HandleFunc("/oauth2/revoke_token/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func newTestClient(t *testing.T, f *fakeUpstream, creds Credentials, sessionPath string) *Client {
	t.Helper()
	store := NewSessionStore(sessionPath, nil)
	return NewClient(creds, store,
		WithBaseURL(f.server.URL),
		WithRateLimit(1000),
	)
}

func TestEnsureSessionNoCredentials(t *testing.T) {
	f := newFakeUpstream(t)
	client := newTestClient(t, f, Credentials{}, "")

	err := client.EnsureSession(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindAuthRequired, Classify(err))
	assert.Equal(t, int64(0), f.loginCalls.Load())
}

func TestEnsureSessionLoginSuccess(t *testing.T) {
	f := newFakeUpstream(t)
	f.loginToken = "tok-1"
	f.validToken = "tok-1"

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	client := newTestClient(t, f, Credentials{Username: "user", Password: "pass"}, sessionPath)

	require.NoError(t, client.EnsureSession(context.Background(), ""))
	assert.Equal(t, StateValid, client.State())
	assert.Equal(t, int64(1), f.loginCalls.Load())

	// The session artifact is persisted for the next process.
	artifact, ok := NewSessionStore(sessionPath, nil).Load()
	require.True(t, ok)
	assert.Equal(t, "tok-1", artifact.AccessToken)
	assert.NotEmpty(t, artifact.DeviceToken)
}

func TestEnsureSessionValidSessionProbesOnly(t *testing.T) {
	f := newFakeUpstream(t)
	f.loginToken = "tok-1"
	f.validToken = "tok-1"
	client := newTestClient(t, f, Credentials{Username: "user", Password: "pass"}, "")

	require.NoError(t, client.EnsureSession(context.Background(), ""))
	require.NoError(t, client.EnsureSession(context.Background(), ""))

	assert.Equal(t, int64(1), f.loginCalls.Load())
}

func TestEnsureSessionRestoresPersistedArtifact(t *testing.T) {
	f := newFakeUpstream(t)
	f.validToken = "tok-saved"

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, NewSessionStore(sessionPath, nil).Save(&SessionArtifact{
		AccessToken: "tok-saved",
		TokenType:   "Bearer",
		DeviceToken: "dev-1",
	}))

	// No credentials configured: only the restored artifact can succeed.
	client := newTestClient(t, f, Credentials{}, sessionPath)

	require.NoError(t, client.EnsureSession(context.Background(), ""))
	assert.Equal(t, StateValid, client.State())
	assert.Equal(t, int64(0), f.loginCalls.Load())
}

func TestEnsureSessionReauthenticatesAfterProbeFailure(t *testing.T) {
	f := newFakeUpstream(t)
	f.loginToken = "tok-1"
	f.validToken = "tok-1"
	client := newTestClient(t, f, Credentials{Username: "user", Password: "pass"}, "")

	require.NoError(t, client.EnsureSession(context.Background(), ""))

	// Upstream rotates the token out from under us.
	f.loginToken = "tok-2"
	f.validToken = "tok-2"

	require.NoError(t, client.EnsureSession(context.Background(), ""))
	assert.Equal(t, StateValid, client.State())
	assert.Equal(t, int64(2), f.loginCalls.Load())
}

func TestEnsureSessionChallenge(t *testing.T) {
	f := newFakeUpstream(t)
	f.loginStatus = http.StatusBadRequest
	f.loginBody = `{"challenge": {"id": "abc", "type": "sms"}}`
	client := newTestClient(t, f, Credentials{Username: "user", Password: "pass"}, "")

	err := client.EnsureSession(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindAuthRequired, Classify(err))
	assert.Equal(t, StateInvalid, client.State())
}

func TestEnsureSessionBadCredentials(t *testing.T) {
	f := newFakeUpstream(t)
	client := newTestClient(t, f, Credentials{Username: "user", Password: "wrong"}, "")

	err := client.EnsureSession(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindNetworkError, Classify(err))
	assert.Equal(t, StateInvalid, client.State())
}

func TestEnsureSessionEmptyTokenResponse(t *testing.T) {
	f := newFakeUpstream(t)
	f.loginBody = `{"access_token": ""}`
	client := newTestClient(t, f, Credentials{Username: "user", Password: "pass"}, "")

	err := client.EnsureSession(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindAuthRequired, Classify(err))
}

func TestEnsureSessionTransportFailure(t *testing.T) {
	f := newFakeUpstream(t)
	client := newTestClient(t, f, Credentials{Username: "user", Password: "pass"}, "")
	f.server.Close()

	err := client.EnsureSession(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindNetworkError, Classify(err))
}

func TestLogoutResetsState(t *testing.T) {
	f := newFakeUpstream(t)
	f.loginToken = "tok-1"
	f.validToken = "tok-1"

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	client := newTestClient(t, f, Credentials{Username: "user", Password: "pass"}, sessionPath)

	require.NoError(t, client.EnsureSession(context.Background(), ""))
	client.Logout(context.Background())

	assert.Equal(t, StateNoSession, client.State())
	_, ok := NewSessionStore(sessionPath, nil).Load()
	assert.False(t, ok)
}
