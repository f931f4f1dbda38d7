package aggregates

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionGroup_JSON(t *testing.T) {
	raw := `{
		"id": "root",
		"operator": "and",
		"conditions": [
			{"id": "c1", "type": "attribute", "attribute": "plan", "operator": "equals", "value": "pro"},
			{"id": "g1", "operator": "or", "conditions": [
				{"id": "c2", "type": "event", "event": "purchase", "operator": "count_gt", "value": 3}
			]},
			{"id": "g2", "operator": "and", "conditions": []}
		]
	}`

	var root ConditionGroup
	require.NoError(t, json.Unmarshal([]byte(raw), &root))

	require.Len(t, root.Conditions, 3)
	leaf, ok := root.Conditions[0].(Condition)
	require.True(t, ok)
	assert.Equal(t, "plan", leaf.Attribute)
	assert.Equal(t, "pro", leaf.Value)

	g1, ok := root.Conditions[1].(ConditionGroup)
	require.True(t, ok)
	assert.Equal(t, OperatorOr, g1.Operator)
	require.Len(t, g1.Conditions, 1)
	assert.Equal(t, 3.0, g1.Conditions[0].(Condition).Value)

	g2, ok := root.Conditions[2].(ConditionGroup)
	require.True(t, ok, "an empty conditions array still marks a group")
	assert.Empty(t, g2.Conditions)

	out, err := json.Marshal(root)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestConditionGroup_EmptyMarshalsArray(t *testing.T) {
	out, err := json.Marshal(ConditionGroup{ID: "g", Operator: OperatorAnd})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"g","operator":"and","conditions":[]}`, string(out))
}

func TestConditionGroup_Depth(t *testing.T) {
	root := ConditionGroup{ID: "a", Conditions: []ConditionNode{
		Condition{ID: "c"},
		ConditionGroup{ID: "b", Conditions: []ConditionNode{
			ConditionGroup{ID: "d"},
		}},
	}}
	assert.Equal(t, 3, root.Depth())
	assert.Equal(t, 1, NewConditionGroup().Depth())
}

func TestConditionGroup_CloneIsIndependent(t *testing.T) {
	root := ConditionGroup{ID: "a", Operator: OperatorAnd, Conditions: []ConditionNode{
		ConditionGroup{ID: "b", Operator: OperatorOr, Conditions: []ConditionNode{Condition{ID: "c"}}},
	}}
	clone := root.Clone()
	clone.Conditions[0] = Condition{ID: "x"}

	_, stillGroup := root.Conditions[0].(ConditionGroup)
	assert.True(t, stillGroup)
}

func TestCondition_Merge(t *testing.T) {
	c := Condition{ID: "c", Type: ConditionAttribute, Attribute: "plan", Operator: "equals", Value: "pro"}
	op := "not_equals"

	merged := c.Merge(ConditionPatch{Operator: &op})
	assert.Equal(t, "not_equals", merged.Operator)
	assert.Equal(t, "pro", merged.Value)

	cleared := c.Merge(ConditionPatch{SetValue: true})
	assert.Nil(t, cleared.Value)
	assert.Equal(t, "equals", c.Operator)
}

func TestGroupOperator_Flip(t *testing.T) {
	assert.Equal(t, OperatorOr, OperatorAnd.Flip())
	assert.Equal(t, OperatorAnd, OperatorOr.Flip())
}
