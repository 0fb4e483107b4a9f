package robinhood

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionState is the auth state machine's current state.
//
//	NoSession -> Authenticating -> Valid
//	Valid     -> Invalid    (probe failure)
//	Invalid   -> Authenticating (retry)
type SessionState int

const (
	StateNoSession SessionState = iota
	StateAuthenticating
	StateValid
	StateInvalid
)

func (s SessionState) String() string {
	switch s {
	case StateNoSession:
		return "no_session"
	case StateAuthenticating:
		return "authenticating"
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	}
	return "unknown"
}

// State returns the current session state.
func (c *Client) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// probe checks session validity with a lightweight authenticated call.
func (c *Client) probe(ctx context.Context) bool {
	profile, err := c.GetAccountProfile(ctx)
	return err == nil && profile != nil
}

// EnsureSession guarantees a valid authenticated session, logging in if
// needed. Authentication is lazy: the first tool call that touches the
// upstream triggers this, and every call after that pays only a cheap
// validity probe, so upstream token rotation is transparent to callers.
//
// mfaCode overrides the configured MFA code for this attempt; pass "" to use
// the configured one. MFA is submitted only when the MFA fallback is
// explicitly enabled.
func (c *Client) EnsureSession(ctx context.Context, mfaCode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateValid {
		if c.probe(ctx) {
			return nil
		}
		c.state = StateInvalid
		c.logger.Debug().Msg("Session probe failed, re-authenticating")
	}

	// Restore a previously persisted session artifact.
	if artifact, ok := c.store.Load(); ok {
		c.setSession(artifact)
		if artifact.DeviceToken != "" {
			c.deviceToken = artifact.DeviceToken
		}
		if c.probe(ctx) {
			c.state = StateValid
			c.logger.Debug().Msg("Restored persisted session")
			return nil
		}
		c.setSession(nil)
	}

	if c.creds.Username == "" || c.creds.Password == "" {
		return AuthRequired(
			"authentication required: set RH_USERNAME and RH_PASSWORD, or ensure a valid session artifact exists; " +
				"you may need to refresh your session in the Robinhood app")
	}

	c.state = StateAuthenticating

	if mfaCode == "" {
		mfaCode = c.creds.MFACode
	}

	artifact, err := c.login(ctx, mfaCode)
	if err != nil {
		c.state = StateInvalid
		return err
	}

	c.setSession(artifact)
	if err := c.store.Save(artifact); err != nil {
		// Persistence is best-effort: the fallback is a full login next run.
		c.logger.Warn().Err(err).Msg("Session artifact not persisted, continuing without cache")
	}

	c.state = StateValid
	c.logger.Info().Str("username", c.creds.Username).Msg("Authenticated with Robinhood")
	return nil
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// login performs the single-attempt password-grant login. No retry or
// backoff: a failure is surfaced immediately.
func (c *Client) login(ctx context.Context, mfaCode string) (*SessionArtifact, error) {
	if c.deviceToken == "" {
		c.deviceToken = uuid.NewString()
	}

	form := url.Values{
		"grant_type":   {"password"},
		"scope":        {"internal"},
		"client_id":    {oauthClientID},
		"expires_in":   {"86400"},
		"device_token": {c.deviceToken},
		"username":     {c.creds.Username},
		"password":     {c.creds.Password},
	}
	if mfaCode != "" && c.creds.AllowMFA {
		form.Set("mfa_code", mfaCode)
	}

	var out loginResponse
	if err := c.postForm(ctx, "/oauth2/token/", form, &out); err != nil {
		if isChallenge(err) {
			return nil, AuthRequired(
				"authentication challenge required: approve the login in the Robinhood app, " +
					"or enable MFA fallback with RH_ALLOW_MFA=1 and provide an MFA code")
		}
		return nil, NetworkError("failed to authenticate", err)
	}

	if out.AccessToken == "" {
		return nil, AuthRequired("login failed: check your credentials or refresh your session in the Robinhood app")
	}

	return &SessionArtifact{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		TokenType:    out.TokenType,
		DeviceToken:  c.deviceToken,
		SavedAt:      time.Now().UTC(),
	}, nil
}

// isChallenge reports whether a login failure is the upstream demanding an
// interactive verification step that cannot be completed headlessly.
func isChallenge(err error) bool {
	var se *StatusError
	if errors.As(err, &se) && strings.Contains(strings.ToLower(se.Body), "challenge") {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "challenge")
}

// Logout best-effort invalidates the upstream session and deletes the
// persisted artifact. Failures are swallowed; the state machine always ends
// in NoSession.
func (c *Client) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s := c.currentSession(); s != nil && s.RefreshToken != "" {
		form := url.Values{
			"client_id": {oauthClientID},
			"token":     {s.RefreshToken},
		}
		if err := c.postForm(ctx, "/oauth2/revoke_token/", form, nil); err != nil {
			c.logger.Debug().Err(err).Msg("Upstream session revoke failed")
		}
	}

	if err := c.store.Clear(); err != nil {
		c.logger.Debug().Err(err).Msg("Session artifact delete failed")
	}

	c.setSession(nil)
	c.state = StateNoSession
}
