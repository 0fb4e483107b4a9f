package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "https://api.robinhood.com", config.Client.BaseURL)
	assert.Equal(t, 5, config.Client.RateLimit)
	assert.Equal(t, 30*time.Second, config.Client.GetTimeout())
	assert.Equal(t, "info", config.Logging.Level)
	assert.Empty(t, config.Session.Path)
	assert.False(t, config.Credentials.AllowMFA)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[credentials]
username = "user@example.com"
allow_mfa = true

[session]
path = "/tmp/session.json"

[client]
rate_limit = 2
timeout = "10s"

[logging]
level = "debug"
`), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", config.Credentials.Username)
	assert.True(t, config.Credentials.AllowMFA)
	assert.Equal(t, "/tmp/session.json", config.Session.Path)
	assert.Equal(t, 2, config.Client.RateLimit)
	assert.Equal(t, 10*time.Second, config.Client.GetTimeout())
	assert.Equal(t, "debug", config.Logging.Level)
	// Values the file does not set keep their defaults.
	assert.Equal(t, "https://api.robinhood.com", config.Client.BaseURL)
}

func TestLoadConfigMissingFileSkipped(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("RH_USERNAME", "env-user")
	t.Setenv("RH_PASSWORD", "env-pass")
	t.Setenv("RH_ALLOW_MFA", "yes")
	t.Setenv("RH_SESSION_PATH", "/tmp/env-session.json")
	t.Setenv("RH_LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[credentials]
username = "file-user"

[logging]
level = "debug"
`), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-user", config.Credentials.Username)
	assert.Equal(t, "env-pass", config.Credentials.Password)
	assert.True(t, config.Credentials.AllowMFA)
	assert.Equal(t, "/tmp/env-session.json", config.Session.Path)
	assert.Equal(t, "warn", config.Logging.Level)
}

func TestGetTimeoutFallsBackOnBadValue(t *testing.T) {
	c := ClientConfig{Timeout: "soon"}
	assert.Equal(t, 30*time.Second, c.GetTimeout())
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on", " On "} {
		assert.True(t, isTruthy(v), v)
	}
	for _, v := range []string{"", "0", "false", "off", "no", "maybe"} {
		assert.False(t, isTruthy(v), v)
	}
}
