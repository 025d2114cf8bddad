package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/nfrund/reviewboard/internal/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var configKeys = []string{
	"BACKEND_BASE_URL", "SERVER_ADDR", "SESSION_SECRET", "FETCH_TIMEOUT",
	"SESSION_IDLE_TTL", "RETRY_RATE_PER_MINUTE", "DISPLAY_TIMEZONE",
	"DISPLAY_LOCALE", "LOG_FORMAT", "LOG_LEVEL",
}

// clearEnv unsets every configuration key for the duration of the test.
// t.Setenv records the original value so cleanup restores it.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "0123456789abcdef")

	cfg, err := config.Load(afero.NewMemMapFs(), config.DefaultEnvFile)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BackendBaseURL)
	assert.Equal(t, ":3000", cfg.ServerAddr)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, 30, cfg.RetryRatePerMinute)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.UTC.String(), cfg.Location().String())
	assert.Equal(t, language.AmericanEnglish, cfg.Locale())
}

func TestLoad_DotenvFile(t *testing.T) {
	clearEnv(t)

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, ".env", []byte(
		"BACKEND_BASE_URL=http://reviews.internal:9000\n"+
			"SESSION_SECRET=dotenv-secret-value-123\n"+
			"FETCH_TIMEOUT=3s\n"+
			"DISPLAY_TIMEZONE=America/New_York\n"+
			"LOG_FORMAT=json\n",
	), 0o644))

	cfg, err := config.Load(fsys, ".env")
	require.NoError(t, err)

	assert.Equal(t, "http://reviews.internal:9000", cfg.BackendBaseURL)
	assert.Equal(t, "dotenv-secret-value-123", cfg.SessionSecret)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "America/New_York", cfg.Location().String())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvironmentWinsOverDotenv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKEND_BASE_URL", "http://from-env:8000")

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, ".env", []byte(
		"BACKEND_BASE_URL=http://from-file:8000\nSESSION_SECRET=dotenv-secret-value-123\n",
	), 0o644))

	cfg, err := config.Load(fsys, ".env")
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:8000", cfg.BackendBaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "short session secret", env: map[string]string{"SESSION_SECRET": "short"}},
		{name: "backend origin is not a url", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "BACKEND_BASE_URL": "not a url"}},
		{name: "unknown log format", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "LOG_FORMAT": "xml"}},
		{name: "unknown time zone", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "DISPLAY_TIMEZONE": "Mars/Olympus"}},
		{name: "malformed locale", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "DISPLAY_LOCALE": "!!"}},
		{name: "malformed duration", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "FETCH_TIMEOUT": "soon"}},
		{name: "zero retry rate", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "RETRY_RATE_PER_MINUTE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load(afero.NewMemMapFs(), config.DefaultEnvFile)
			assert.Error(t, err)
		})
	}
}

func TestRequireSessionSecret(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(afero.NewMemMapFs(), config.DefaultEnvFile)
	require.NoError(t, err, "terminal commands run without a session secret")
	assert.ErrorIs(t, cfg.RequireSessionSecret(), config.ErrMissingSessionSecret)

	cfg.SessionSecret = "0123456789abcdef"
	assert.NoError(t, cfg.RequireSessionSecret())
}
