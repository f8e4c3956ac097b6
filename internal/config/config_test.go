package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreshInstallIsNotConfigured(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Server.URL, "a fresh install has no backend URL")
	assert.False(t, cfg.IsConfigured(), "the setup flow must run before first use")
}

func TestIsConfiguredWithURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.URL = "http://localhost:8080"

	assert.True(t, cfg.IsConfigured())
}

func TestDefaultBrowsePreferences(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "categories", cfg.Browse.Scheme)
	assert.Equal(t, 50, cfg.Browse.PageSize)
	assert.Equal(t, "LIVE", cfg.Browse.ContentType)
}
