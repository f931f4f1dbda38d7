package events

import (
	"time"

	"journeybuilder/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Event type names
const (
	TypeJourneyCreated   = "journey.created"
	TypeJourneyUpdated   = "journey.updated"
	TypeJourneyDeleted   = "journey.deleted"
	TypeJourneySaved     = "journey.saved"
	TypeJourneyPublished = "journey.published"
	TypeJourneyPaused    = "journey.paused"
	TypeJourneyArchived  = "journey.archived"

	TypeSegmentCreated = "segment.created"
	TypeSegmentUpdated = "segment.updated"
	TypeSegmentDeleted = "segment.deleted"
	TypeSegmentSaved   = "segment.saved"
)

// Journey Events

// JourneyEvent is raised for every journey lifecycle change. EventType tells
// them apart; Version carries the journey version at the time of the change.
type JourneyEvent struct {
	BaseEvent
	JourneyID valueobjects.JourneyID `json:"journey_id"`
	Name      string                 `json:"name,omitempty"`
	Status    string                 `json:"status,omitempty"`
	NodeCount int                    `json:"node_count"`
	EdgeCount int                    `json:"edge_count"`
}

// NewJourneyEvent creates a journey event of the given type
func NewJourneyEvent(eventType string, id valueobjects.JourneyID, name, status string, version, nodes, edges int, timestamp time.Time) JourneyEvent {
	return JourneyEvent{
		BaseEvent: BaseEvent{
			AggregateID: id.String(),
			EventType:   eventType,
			Timestamp:   timestamp,
			Version:     version,
		},
		JourneyID: id,
		Name:      name,
		Status:    status,
		NodeCount: nodes,
		EdgeCount: edges,
	}
}

// Segment Events

// SegmentEvent is raised for segment catalog changes
type SegmentEvent struct {
	BaseEvent
	SegmentID      valueobjects.SegmentID `json:"segment_id"`
	Name           string                 `json:"name,omitempty"`
	ConditionDepth int                    `json:"condition_depth,omitempty"`
}

// NewSegmentEvent creates a segment event of the given type
func NewSegmentEvent(eventType string, id valueobjects.SegmentID, name string, depth int, timestamp time.Time) SegmentEvent {
	return SegmentEvent{
		BaseEvent: BaseEvent{
			AggregateID: id.String(),
			EventType:   eventType,
			Timestamp:   timestamp,
			Version:     1,
		},
		SegmentID:      id,
		Name:           name,
		ConditionDepth: depth,
	}
}
