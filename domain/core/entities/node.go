package entities

import (
	"encoding/json"

	"journeybuilder/domain/core/valueobjects"
)

// JourneyNode is one step placed on a journey canvas.
// Selected, Dragging, Width and Height are editor state that travels with the
// node but carries no journey semantics.
type JourneyNode struct {
	ID       valueobjects.NodeID   `json:"id"`
	Type     valueobjects.NodeType `json:"type"`
	Position valueobjects.Position `json:"position"`
	Data     NodeData              `json:"data"`

	Selected bool     `json:"selected,omitempty"`
	Dragging bool     `json:"dragging,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
}

// NodeData is the journey-level payload of a node
type NodeData struct {
	ID           valueobjects.NodeID       `json:"id"`
	Type         valueobjects.NodeType     `json:"type"`
	Category     valueobjects.NodeCategory `json:"category"`
	Label        string                    `json:"label"`
	Description  string                    `json:"description,omitempty"`
	Config       valueobjects.NodeConfig   `json:"config"`
	IsConfigured bool                      `json:"isConfigured"`
}

// NodeDataPatch is a shallow update of NodeData. Nil fields are left untouched.
type NodeDataPatch struct {
	Label        *string
	Description  *string
	Config       valueobjects.NodeConfig
	IsConfigured *bool
}

// Merge returns a copy of d with the non-nil fields of p applied
func (d NodeData) Merge(p NodeDataPatch) NodeData {
	if p.Label != nil {
		d.Label = *p.Label
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Config != nil {
		d.Config = p.Config
	}
	if p.IsConfigured != nil {
		d.IsConfigured = *p.IsConfigured
	}
	return d
}

// Clone returns a copy that shares no mutable state with n
func (n JourneyNode) Clone() JourneyNode {
	if n.Width != nil {
		w := *n.Width
		n.Width = &w
	}
	if n.Height != nil {
		h := *n.Height
		n.Height = &h
	}
	// Config variants hold scalars only, so the interface value copies cleanly.
	return n
}

type nodeDataJSON struct {
	ID           valueobjects.NodeID       `json:"id"`
	Type         valueobjects.NodeType     `json:"type"`
	Category     valueobjects.NodeCategory `json:"category"`
	Label        string                    `json:"label"`
	Description  string                    `json:"description,omitempty"`
	Config       json.RawMessage           `json:"config"`
	IsConfigured bool                      `json:"isConfigured"`
}

// MarshalJSON writes the config as the flat object of its variant
func (d NodeData) MarshalJSON() ([]byte, error) {
	cfg := d.Config
	if cfg == nil {
		if def, ok := valueobjects.DefaultNodeConfig(d.Type); ok {
			cfg = def
		}
	}
	raw := json.RawMessage("{}")
	if cfg != nil {
		b, err := json.Marshal(cfg)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(nodeDataJSON{
		ID:           d.ID,
		Type:         d.Type,
		Category:     d.Category,
		Label:        d.Label,
		Description:  d.Description,
		Config:       raw,
		IsConfigured: d.IsConfigured,
	})
}

// UnmarshalJSON picks the config variant from the node type
func (d *NodeData) UnmarshalJSON(b []byte) error {
	var aux nodeDataJSON
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	cfg, err := valueobjects.DecodeNodeConfig(aux.Type, aux.Config)
	if err != nil {
		return err
	}
	category := aux.Category
	if category == "" {
		category, _ = aux.Type.DefaultCategory()
	}
	*d = NodeData{
		ID:           aux.ID,
		Type:         aux.Type,
		Category:     category,
		Label:        aux.Label,
		Description:  aux.Description,
		Config:       cfg,
		IsConfigured: aux.IsConfigured,
	}
	return nil
}
