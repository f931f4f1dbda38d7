package entities

import "journeybuilder/domain/core/valueobjects"

// DefaultEdgeType is the connector style every new edge is drawn with
const DefaultEdgeType = "smoothstep"

// Edge is a directed connection between two node ports
type Edge struct {
	ID           valueobjects.EdgeID    `json:"id"`
	Source       valueobjects.NodeID    `json:"source"`
	Target       valueobjects.NodeID    `json:"target"`
	SourceHandle string                 `json:"sourceHandle,omitempty"`
	TargetHandle string                 `json:"targetHandle,omitempty"`
	Type         string                 `json:"type,omitempty"`
	Animated     bool                   `json:"animated,omitempty"`
	Label        string                 `json:"label,omitempty"`
	LabelType    valueobjects.LabelType `json:"labelType,omitempty"`
	Selected     bool                   `json:"selected,omitempty"`
}

// Connection is a request to join two nodes
type Connection struct {
	Source       valueobjects.NodeID `json:"source" validate:"required"`
	Target       valueobjects.NodeID `json:"target" validate:"required"`
	SourceHandle string              `json:"sourceHandle,omitempty"`
	TargetHandle string              `json:"targetHandle,omitempty"`
}

// NewEdge builds an edge for conn with an already derived label
func NewEdge(conn Connection, label valueobjects.EdgeLabel) Edge {
	return Edge{
		ID:           valueobjects.NewEdgeID(),
		Source:       conn.Source,
		Target:       conn.Target,
		SourceHandle: conn.SourceHandle,
		TargetHandle: conn.TargetHandle,
		Type:         DefaultEdgeType,
		Animated:     true,
		Label:        label.Text,
		LabelType:    label.Type,
	}
}

// Touches reports whether the edge starts or ends at id
func (e Edge) Touches(id valueobjects.NodeID) bool {
	return e.Source == id || e.Target == id
}
