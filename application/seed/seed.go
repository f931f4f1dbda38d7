package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"journeybuilder/domain/core/aggregates"
	"journeybuilder/domain/core/valueobjects"
)

// File is the layout of a seed document
type File struct {
	Journeys []aggregates.Journey `json:"journeys"`
}

// LoadFile reads journeys from a YAML or JSON seed file. An empty path
// yields no journeys.
func LoadFile(path string, now time.Time) ([]aggregates.Journey, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw, now)
}

// Parse decodes a seed document. JSON is valid YAML, so both go through the
// YAML decoder and are then re-encoded as JSON to reach the domain decoders.
func Parse(raw []byte, now time.Time) ([]aggregates.Journey, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if doc == nil {
		return nil, nil
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize seed: %w", err)
	}

	var file File
	if err := json.Unmarshal(normalized, &file); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	for i := range file.Journeys {
		fillDefaults(&file.Journeys[i], now)
	}
	return file.Journeys, nil
}

func fillDefaults(j *aggregates.Journey, now time.Time) {
	if j.ID == "" {
		j.ID = valueobjects.NewJourneyID()
	}
	if j.Status == "" {
		j.Status = aggregates.StatusDraft
	}
	if j.Version < 1 {
		j.Version = 1
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = j.CreatedAt
	}
	if j.Tags == nil {
		j.Tags = []string{}
	}
}
