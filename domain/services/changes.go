package services

import (
	"journeybuilder/domain/core/entities"
	"journeybuilder/domain/core/valueobjects"
)

// ChangeType is the kind of structural delta the canvas reports
type ChangeType string

const (
	ChangePosition   ChangeType = "position"
	ChangeSelect     ChangeType = "select"
	ChangeRemove     ChangeType = "remove"
	ChangeDimensions ChangeType = "dimensions"
	ChangeAdd        ChangeType = "add"
	ChangeReplace    ChangeType = "replace"
)

// NodeChange is one delta addressed to a node. Only the fields relevant to
// Type are read.
type NodeChange struct {
	Type       ChangeType               `json:"type" validate:"required,oneof=position select remove dimensions add replace"`
	ID         valueobjects.NodeID      `json:"id,omitempty"`
	Position   *valueobjects.Position   `json:"position,omitempty"`
	Dragging   *bool                    `json:"dragging,omitempty"`
	Selected   bool                     `json:"selected,omitempty"`
	Dimensions *valueobjects.Dimensions `json:"dimensions,omitempty"`
	Item       *entities.JourneyNode    `json:"item,omitempty"`
}

// EdgeChange is one delta addressed to an edge
type EdgeChange struct {
	Type     ChangeType          `json:"type" validate:"required,oneof=select remove add replace"`
	ID       valueobjects.EdgeID `json:"id,omitempty"`
	Selected bool                `json:"selected,omitempty"`
	Item     *entities.Edge      `json:"item,omitempty"`
}

// ApplyNodeChanges folds changes over nodes and returns a new slice. Nodes
// keep their relative order, changes addressed to one id apply in the order
// given, and added nodes are appended after the existing ones. The input
// slice is not modified.
func ApplyNodeChanges(changes []NodeChange, nodes []entities.JourneyNode) []entities.JourneyNode {
	byID := make(map[valueobjects.NodeID][]NodeChange)
	var added []entities.JourneyNode
	for _, c := range changes {
		if c.Type == ChangeAdd {
			if c.Item != nil {
				added = append(added, c.Item.Clone())
			}
			continue
		}
		byID[c.ID] = append(byID[c.ID], c)
	}

	out := make([]entities.JourneyNode, 0, len(nodes)+len(added))
	for _, node := range nodes {
		pending, ok := byID[node.ID]
		if !ok {
			out = append(out, node.Clone())
			continue
		}
		if next, keep := foldNode(node.Clone(), pending); keep {
			out = append(out, next)
		}
	}
	return append(out, added...)
}

func foldNode(node entities.JourneyNode, changes []NodeChange) (entities.JourneyNode, bool) {
	for _, c := range changes {
		switch c.Type {
		case ChangeRemove:
			return node, false
		case ChangeReplace:
			if c.Item != nil {
				node = c.Item.Clone()
			}
		case ChangePosition:
			if c.Position != nil {
				node.Position = *c.Position
			}
			if c.Dragging != nil {
				node.Dragging = *c.Dragging
			}
		case ChangeSelect:
			node.Selected = c.Selected
		case ChangeDimensions:
			if c.Dimensions != nil {
				w, h := c.Dimensions.Width, c.Dimensions.Height
				node.Width = &w
				node.Height = &h
			}
		}
	}
	return node, true
}

// ApplyEdgeChanges is the edge counterpart of ApplyNodeChanges
func ApplyEdgeChanges(changes []EdgeChange, edges []entities.Edge) []entities.Edge {
	byID := make(map[valueobjects.EdgeID][]EdgeChange)
	var added []entities.Edge
	for _, c := range changes {
		if c.Type == ChangeAdd {
			if c.Item != nil {
				added = append(added, *c.Item)
			}
			continue
		}
		byID[c.ID] = append(byID[c.ID], c)
	}

	out := make([]entities.Edge, 0, len(edges)+len(added))
	for _, edge := range edges {
		pending, ok := byID[edge.ID]
		if !ok {
			out = append(out, edge)
			continue
		}
		if next, keep := foldEdge(edge, pending); keep {
			out = append(out, next)
		}
	}
	return append(out, added...)
}

func foldEdge(edge entities.Edge, changes []EdgeChange) (entities.Edge, bool) {
	for _, c := range changes {
		switch c.Type {
		case ChangeRemove:
			return edge, false
		case ChangeReplace:
			if c.Item != nil {
				edge = *c.Item
			}
		case ChangeSelect:
			edge.Selected = c.Selected
		}
	}
	return edge, true
}
