package app

import (
	"testing"
	"time"

	"github.com/nfrund/reviewboard/internal/config"
	"github.com/nfrund/reviewboard/internal/rendering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModules(t *testing.T) {
	cfg := &config.Config{SessionIdleTTL: time.Minute, RetryRatePerMinute: 5}

	mods := NewModules(Dependencies{Config: cfg, Renderer: rendering.NewUniversalRenderer()})

	require.Len(t, mods, 1)
	assert.Equal(t, "reviews", mods[0].Name())
}

func TestReviewsDeps_UsesConfig(t *testing.T) {
	cfg := &config.Config{SessionIdleTTL: 2 * time.Minute, RetryRatePerMinute: 7}

	deps := reviewsDeps(Dependencies{Config: cfg})

	assert.Equal(t, 2*time.Minute, deps.SessionIdleTTL)
	assert.Equal(t, 7, deps.RetryRatePerMinute)
	assert.Equal(t, time.UTC, deps.Location)
	assert.Equal(t, cfg.Locale(), deps.Locale)
}
