package aggregates

import (
	"time"

	"journeybuilder/domain/core/entities"
	"journeybuilder/domain/core/valueobjects"
)

// JourneyStatus is the lifecycle state of a journey
type JourneyStatus string

const (
	StatusDraft     JourneyStatus = "draft"
	StatusPublished JourneyStatus = "published"
	StatusPaused    JourneyStatus = "paused"
	StatusArchived  JourneyStatus = "archived"
)

// IsValid reports whether s is a known status
func (s JourneyStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusPaused, StatusArchived:
		return true
	}
	return false
}

// JourneyStats is a read-only snapshot of audience counts. Nothing in this
// module computes it.
type JourneyStats struct {
	Entered   int `json:"entered"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Exited    int `json:"exited"`
}

// Journey is a saved workflow graph plus its lifecycle metadata
type Journey struct {
	ID          valueobjects.JourneyID `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Tags        []string               `json:"tags"`
	Status      JourneyStatus          `json:"status"`
	Nodes       []entities.JourneyNode `json:"nodes"`
	Edges       []entities.Edge        `json:"edges"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
	PublishedAt *time.Time             `json:"publishedAt,omitempty"`
	Version     int                    `json:"version"`
	Stats       *JourneyStats          `json:"stats,omitempty"`
}

// NewJourney creates an empty draft journey
func NewJourney(name, description string, version int, now time.Time) Journey {
	return Journey{
		ID:          valueobjects.NewJourneyID(),
		Name:        name,
		Description: description,
		Tags:        []string{},
		Status:      StatusDraft,
		Nodes:       []entities.JourneyNode{},
		Edges:       []entities.Edge{},
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     version,
	}
}

// JourneyPatch is a shallow update of a journey's metadata
type JourneyPatch struct {
	Name        *string
	Description *string
	Tags        []string
	Status      *JourneyStatus
	Stats       *JourneyStats
}

// Apply merges the non-nil fields of p and refreshes UpdatedAt
func (j *Journey) Apply(p JourneyPatch, now time.Time) {
	if p.Name != nil {
		j.Name = *p.Name
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Tags != nil {
		j.Tags = append([]string{}, p.Tags...)
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.Stats != nil {
		stats := *p.Stats
		j.Stats = &stats
	}
	j.UpdatedAt = now
}

// Publish marks the journey live
func (j *Journey) Publish(now time.Time, bumpVersion bool) {
	published := now
	j.Status = StatusPublished
	j.PublishedAt = &published
	j.UpdatedAt = now
	if bumpVersion {
		j.Version++
	}
}

// Pause stops the journey without discarding it
func (j *Journey) Pause(now time.Time) {
	j.Status = StatusPaused
	j.UpdatedAt = now
}

// Archive retires the journey
func (j *Journey) Archive(now time.Time) {
	j.Status = StatusArchived
	j.UpdatedAt = now
}

// ReplaceGraph stores copies of nodes and edges as the journey's persisted graph
func (j *Journey) ReplaceGraph(nodes []entities.JourneyNode, edges []entities.Edge, now time.Time) {
	j.Nodes = CloneNodes(nodes)
	j.Edges = CloneEdges(edges)
	j.UpdatedAt = now
}

// Clone returns a deep copy of the journey
func (j Journey) Clone() Journey {
	out := j
	out.Tags = append([]string{}, j.Tags...)
	out.Nodes = CloneNodes(j.Nodes)
	out.Edges = CloneEdges(j.Edges)
	if j.PublishedAt != nil {
		t := *j.PublishedAt
		out.PublishedAt = &t
	}
	if j.Stats != nil {
		s := *j.Stats
		out.Stats = &s
	}
	return out
}

// CloneNodes deep-copies a node slice, never returning nil
func CloneNodes(nodes []entities.JourneyNode) []entities.JourneyNode {
	out := make([]entities.JourneyNode, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// CloneEdges copies an edge slice, never returning nil
func CloneEdges(edges []entities.Edge) []entities.Edge {
	out := make([]entities.Edge, len(edges))
	copy(out, edges)
	return out
}
