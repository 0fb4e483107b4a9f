package robinhood

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"robinhood-mcp/internal/common"
)

// SessionArtifact is the opaque persisted token data representing an
// authenticated upstream connection.
type SessionArtifact struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	DeviceToken  string    `json:"device_token"`
	SavedAt      time.Time `json:"saved_at"`
}

// SessionStore persists the session artifact to a configured path.
// Persistence is an optimization, not a correctness requirement: the auth
// state machine always falls back to a full login, so callers log Save and
// Clear failures and continue.
type SessionStore struct {
	path   string
	logger *common.Logger
}

// NewSessionStore creates a store for the given path. An empty path disables
// persistence entirely.
func NewSessionStore(path string, logger *common.Logger) *SessionStore {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &SessionStore{path: path, logger: logger}
}

// Load returns the previously saved artifact, or ok=false if the path is
// unset, the file is missing, or its contents do not parse. Read and parse
// failures are treated as absence, never as errors.
func (s *SessionStore) Load() (*SessionArtifact, bool) {
	if s.path == "" {
		return nil, false
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	var artifact SessionArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		s.logger.Debug().Err(err).Str("path", s.path).Msg("Session artifact unreadable, treating as absent")
		return nil, false
	}

	if artifact.AccessToken == "" {
		return nil, false
	}

	return &artifact, true
}

// Save writes the artifact, creating parent directories as needed.
// The returned error is informational: callers continue without persistence.
func (s *SessionStore) Save(artifact *SessionArtifact) error {
	if s.path == "" || artifact == nil {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}

	data, err := json.Marshal(artifact)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Clear deletes the artifact file if present.
func (s *SessionStore) Clear() error {
	if s.path == "" {
		return nil
	}

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
