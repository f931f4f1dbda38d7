package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journeybuilder/domain/core/aggregates"
	"journeybuilder/domain/core/valueobjects"
)

const yamlSeed = `
journeys:
  - id: journey-welcome
    name: Welcome Flow
    status: published
    version: 3
    tags: [onboarding]
    nodes:
      - id: t1
        type: occurrence-of-event
        position: {x: 250, y: 50}
        data:
          id: t1
          type: occurrence-of-event
          category: trigger
          label: Signed Up
          config: {eventName: signup}
          isConfigured: true
      - id: a1
        type: send-email
        position: {x: 250, y: 200}
        data:
          id: a1
          type: send-email
          label: Welcome Email
          config: {subject: Welcome aboard}
    edges:
      - id: e1
        source: t1
        target: a1
    stats: {entered: 1200, active: 300, completed: 850, exited: 50}
  - name: Draft without ids
`

func TestParse_YAML(t *testing.T) {
	now := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	journeys, err := Parse([]byte(yamlSeed), now)
	require.NoError(t, err)
	require.Len(t, journeys, 2)

	welcome := journeys[0]
	assert.Equal(t, valueobjects.JourneyID("journey-welcome"), welcome.ID)
	assert.Equal(t, aggregates.StatusPublished, welcome.Status)
	assert.Equal(t, 3, welcome.Version)
	assert.Equal(t, []string{"onboarding"}, welcome.Tags)
	require.Len(t, welcome.Nodes, 2)
	assert.Equal(t, valueobjects.EventTriggerConfig{EventName: "signup"}, welcome.Nodes[0].Data.Config)
	assert.Equal(t, valueobjects.CategoryAction, welcome.Nodes[1].Data.Category)
	assert.Equal(t, valueobjects.EmailConfig{Subject: "Welcome aboard"}, welcome.Nodes[1].Data.Config)
	require.Len(t, welcome.Edges, 1)
	require.NotNil(t, welcome.Stats)
	assert.Equal(t, 850, welcome.Stats.Completed)

	draft := journeys[1]
	assert.NotEmpty(t, draft.ID)
	assert.Equal(t, aggregates.StatusDraft, draft.Status)
	assert.Equal(t, 1, draft.Version)
	assert.Equal(t, now, draft.CreatedAt)
	assert.Equal(t, now, draft.UpdatedAt)
}

func TestParse_JSON(t *testing.T) {
	raw := `{"journeys":[{"id":"j1","name":"JSON seed","nodes":[],"edges":[]}]}`
	journeys, err := Parse([]byte(raw), time.Now())
	require.NoError(t, err)
	require.Len(t, journeys, 1)
	assert.Equal(t, "JSON seed", journeys[0].Name)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("journeys: [unclosed"), time.Now())
	assert.Error(t, err)

	_, err = Parse([]byte(`{"journeys":[{"nodes":[{"id":"x","data":{"type":"teleport"}}]}]}`), time.Now())
	assert.Error(t, err)

	journeys, err := Parse([]byte(""), time.Now())
	assert.NoError(t, err)
	assert.Empty(t, journeys)
}

func TestLoadFile(t *testing.T) {
	journeys, err := LoadFile("", time.Now())
	require.NoError(t, err)
	assert.Nil(t, journeys)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlSeed), 0o600))
	journeys, err = LoadFile(path, time.Now())
	require.NoError(t, err)
	assert.Len(t, journeys, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), time.Now())
	assert.Error(t, err)
}
