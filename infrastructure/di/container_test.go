package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journeybuilder/infrastructure/config"
)

const seedYAML = `
journeys:
  - name: Welcome Series
    description: Onboarding emails
    status: published
  - name: Win-back
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedYAML), 0o600))

	cfg := config.Defaults()
	cfg.Environment = "test"
	cfg.LogLevel = "error"
	cfg.StoragePath = dir
	cfg.SeedFile = seedPath
	return cfg
}

func TestInitializeContainer_MemoryBackend(t *testing.T) {
	cfg := testConfig(t)

	container, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	journeys := container.Journeys.Journeys()
	require.Len(t, journeys, 2)
	assert.Equal(t, "Welcome Series", journeys[0].Name)
	assert.Len(t, container.Catalog.All(), 32)

	rec := httptest.NewRecorder()
	container.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/journeys", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	container.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInitializeContainer_BadgerSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageBackend = config.StorageBadger

	first, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	created := first.Segments.CreateSegment("High value", "")
	cleanup()

	// the persisted catalog wins over the seed on the second start
	cfg.SeedFile = ""
	second, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.Len(t, second.Journeys.Journeys(), 2)
	seg, ok := second.Segments.Segment(created.ID)
	require.True(t, ok)
	assert.Equal(t, "High value", seg.Name)
}

func TestInitializeContainer_RequiresSecretForAuth(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = "secret"

	container, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	rec := httptest.NewRecorder()
	container.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/journeys", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
