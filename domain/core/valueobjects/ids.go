package valueobjects

import (
	"strings"

	"github.com/google/uuid"
)

// Identifiers are opaque strings. Generated ones carry a readable prefix so
// persisted snapshots stay easy to inspect, but nothing parses them.

// NodeID identifies a node within one journey graph
type NodeID string

// EdgeID identifies an edge within one journey graph
type EdgeID string

// JourneyID identifies a journey in the catalog
type JourneyID string

// SegmentID identifies a segment in the catalog
type SegmentID string

// ConditionID identifies a leaf condition or a condition group inside a segment tree
type ConditionID string

// NewNodeID creates a node id prefixed with the node type, e.g. "send-email-3f2a..."
func NewNodeID(nodeType NodeType) NodeID {
	return NodeID(prefixed(string(nodeType)))
}

// NewEdgeID creates a new random EdgeID
func NewEdgeID() EdgeID {
	return EdgeID(prefixed("edge"))
}

// NewJourneyID creates a new random JourneyID
func NewJourneyID() JourneyID {
	return JourneyID(prefixed("journey"))
}

// NewSegmentID creates a new random SegmentID
func NewSegmentID() SegmentID {
	return SegmentID(prefixed("segment"))
}

// NewGroupID creates an id for a new condition group
func NewGroupID() ConditionID {
	return ConditionID(prefixed("group"))
}

// NewConditionID creates an id for a new leaf condition
func NewConditionID() ConditionID {
	return ConditionID(prefixed("condition"))
}

// String returns the string representation
func (id NodeID) String() string { return string(id) }

// IsZero checks if the NodeID is the zero value
func (id NodeID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

func (id EdgeID) String() string      { return string(id) }
func (id JourneyID) String() string   { return string(id) }
func (id SegmentID) String() string   { return string(id) }
func (id ConditionID) String() string { return string(id) }

func prefixed(prefix string) string {
	if prefix == "" {
		return uuid.New().String()
	}
	return prefix + "-" + uuid.New().String()
}
