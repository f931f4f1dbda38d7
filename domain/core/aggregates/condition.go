package aggregates

import (
	"encoding/json"

	"journeybuilder/domain/core/valueobjects"
)

// GroupOperator joins the children of a condition group
type GroupOperator string

const (
	OperatorAnd GroupOperator = "and"
	OperatorOr  GroupOperator = "or"
)

// Flip returns the other operator
func (o GroupOperator) Flip() GroupOperator {
	if o == OperatorAnd {
		return OperatorOr
	}
	return OperatorAnd
}

// ConditionType says whether a leaf tests a user attribute or an event
type ConditionType string

const (
	ConditionAttribute ConditionType = "attribute"
	ConditionEvent     ConditionType = "event"
)

// ConditionNode is either a leaf Condition or a nested ConditionGroup
type ConditionNode interface {
	NodeID() valueobjects.ConditionID
	isConditionNode()
}

// Condition is a leaf test. Operator is free-form and Value holds any JSON
// value; neither is interpreted here.
type Condition struct {
	ID        valueobjects.ConditionID `json:"id"`
	Type      ConditionType            `json:"type"`
	Attribute string                   `json:"attribute,omitempty"`
	Event     string                   `json:"event,omitempty"`
	Operator  string                   `json:"operator"`
	Value     any                      `json:"value"`
}

// ConditionGroup is an AND/OR node with ordered children
type ConditionGroup struct {
	ID         valueobjects.ConditionID `json:"id"`
	Operator   GroupOperator            `json:"operator"`
	Conditions []ConditionNode          `json:"conditions"`
}

func (c Condition) NodeID() valueobjects.ConditionID      { return c.ID }
func (g ConditionGroup) NodeID() valueobjects.ConditionID { return g.ID }

func (Condition) isConditionNode()      {}
func (ConditionGroup) isConditionNode() {}

// NewConditionGroup creates an empty AND group
func NewConditionGroup() ConditionGroup {
	return ConditionGroup{
		ID:         valueobjects.NewGroupID(),
		Operator:   OperatorAnd,
		Conditions: []ConditionNode{},
	}
}

// ConditionPatch is a shallow update of a leaf. Value is applied when SetValue
// is true so that null can be assigned explicitly.
type ConditionPatch struct {
	Type      *ConditionType
	Attribute *string
	Event     *string
	Operator  *string
	Value     any
	SetValue  bool
}

// Merge returns a copy of c with p applied
func (c Condition) Merge(p ConditionPatch) Condition {
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Attribute != nil {
		c.Attribute = *p.Attribute
	}
	if p.Event != nil {
		c.Event = *p.Event
	}
	if p.Operator != nil {
		c.Operator = *p.Operator
	}
	if p.SetValue {
		c.Value = p.Value
	}
	return c
}

// Clone copies the group and every nested group. Leaf values are shared;
// they are replaced, never mutated in place.
func (g ConditionGroup) Clone() ConditionGroup {
	out := ConditionGroup{ID: g.ID, Operator: g.Operator, Conditions: make([]ConditionNode, len(g.Conditions))}
	for i, child := range g.Conditions {
		if sub, ok := child.(ConditionGroup); ok {
			out.Conditions[i] = sub.Clone()
			continue
		}
		out.Conditions[i] = child
	}
	return out
}

// Depth is the number of group levels, counting g itself
func (g ConditionGroup) Depth() int {
	deepest := 0
	for _, child := range g.Conditions {
		if sub, ok := child.(ConditionGroup); ok {
			if d := sub.Depth(); d > deepest {
				deepest = d
			}
		}
	}
	return deepest + 1
}

// MarshalJSON always emits an array of children
func (g ConditionGroup) MarshalJSON() ([]byte, error) {
	children := g.Conditions
	if children == nil {
		children = []ConditionNode{}
	}
	return json.Marshal(struct {
		ID         valueobjects.ConditionID `json:"id"`
		Operator   GroupOperator            `json:"operator"`
		Conditions []ConditionNode          `json:"conditions"`
	}{g.ID, g.Operator, children})
}

// UnmarshalJSON treats any child carrying a "conditions" array as a group
func (g *ConditionGroup) UnmarshalJSON(b []byte) error {
	var aux struct {
		ID         valueobjects.ConditionID `json:"id"`
		Operator   GroupOperator            `json:"operator"`
		Conditions []json.RawMessage        `json:"conditions"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	children := make([]ConditionNode, 0, len(aux.Conditions))
	for _, raw := range aux.Conditions {
		child, err := decodeConditionNode(raw)
		if err != nil {
			return err
		}
		children = append(children, child)
	}

	operator := aux.Operator
	if operator == "" {
		operator = OperatorAnd
	}
	*g = ConditionGroup{ID: aux.ID, Operator: operator, Conditions: children}
	return nil
}

func decodeConditionNode(raw json.RawMessage) (ConditionNode, error) {
	var probe struct {
		Conditions json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	if len(probe.Conditions) > 0 && probe.Conditions[0] == '[' {
		var group ConditionGroup
		if err := json.Unmarshal(raw, &group); err != nil {
			return nil, err
		}
		return group, nil
	}
	var leaf Condition
	if err := json.Unmarshal(raw, &leaf); err != nil {
		return nil, err
	}
	return leaf, nil
}
