package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journeybuilder/domain/core/aggregates"
	"journeybuilder/domain/core/valueobjects"
)

// root(and) -> [leaf c1, group h(or) -> [leaf c2], group k(and)]
func sampleTree() aggregates.ConditionGroup {
	return aggregates.ConditionGroup{
		ID:       "root",
		Operator: aggregates.OperatorAnd,
		Conditions: []aggregates.ConditionNode{
			aggregates.Condition{ID: "c1", Type: aggregates.ConditionAttribute, Attribute: "plan", Operator: "equals", Value: "pro"},
			aggregates.ConditionGroup{
				ID:       "h",
				Operator: aggregates.OperatorOr,
				Conditions: []aggregates.ConditionNode{
					aggregates.Condition{ID: "c2", Type: aggregates.ConditionEvent, Event: "purchase", Operator: "count_gt", Value: 1.0},
				},
			},
			aggregates.ConditionGroup{ID: "k", Operator: aggregates.OperatorAnd, Conditions: []aggregates.ConditionNode{}},
		},
	}
}

func TestRewriteGroup_FlipNested(t *testing.T) {
	root := sampleTree()

	out, found := RewriteGroup(root, "h", FlipOperator())
	require.True(t, found)

	assert.Equal(t, aggregates.OperatorAnd, out.Operator)
	h := out.Conditions[1].(aggregates.ConditionGroup)
	assert.Equal(t, aggregates.OperatorAnd, h.Operator)
	assert.Equal(t, root.Conditions[0], out.Conditions[0])
	assert.Equal(t, root.Conditions[2], out.Conditions[2])

	// original untouched
	assert.Equal(t, aggregates.OperatorOr, root.Conditions[1].(aggregates.ConditionGroup).Operator)
}

func TestRewriteGroup_NotFound(t *testing.T) {
	root := sampleTree()
	out, found := RewriteGroup(root, "missing", FlipOperator())
	assert.False(t, found)
	assert.Equal(t, root, out)
}

func TestRewriteGroup_Operations(t *testing.T) {
	leaf := aggregates.Condition{ID: "new", Type: aggregates.ConditionAttribute, Attribute: "country", Operator: "equals", Value: "DE"}
	operator := "not_equals"

	tests := []struct {
		name  string
		group valueobjects.ConditionID
		fn    GroupRewrite
		check func(t *testing.T, out aggregates.ConditionGroup)
	}{
		{
			name:  "append to nested group only",
			group: "h",
			fn:    AppendChild(leaf),
			check: func(t *testing.T, out aggregates.ConditionGroup) {
				assert.Len(t, out.Conditions, 3)
				h := out.Conditions[1].(aggregates.ConditionGroup)
				require.Len(t, h.Conditions, 2)
				assert.Equal(t, leaf, h.Conditions[1])
				assert.Empty(t, out.Conditions[2].(aggregates.ConditionGroup).Conditions)
			},
		},
		{
			name:  "patch direct leaf",
			group: "root",
			fn:    PatchLeaf("c1", aggregates.ConditionPatch{Operator: &operator}),
			check: func(t *testing.T, out aggregates.ConditionGroup) {
				c1 := out.Conditions[0].(aggregates.Condition)
				assert.Equal(t, "not_equals", c1.Operator)
				assert.Equal(t, "pro", c1.Value)
			},
		},
		{
			name:  "patch ignores leaf of nested group",
			group: "root",
			fn:    PatchLeaf("c2", aggregates.ConditionPatch{Operator: &operator}),
			check: func(t *testing.T, out aggregates.ConditionGroup) {
				assert.Equal(t, sampleTree(), out)
			},
		},
		{
			name:  "remove direct group child",
			group: "root",
			fn:    RemoveChild("k"),
			check: func(t *testing.T, out aggregates.ConditionGroup) {
				assert.Len(t, out.Conditions, 2)
			},
		},
		{
			name:  "remove is scoped to the named group",
			group: "root",
			fn:    RemoveChild("c2"),
			check: func(t *testing.T, out aggregates.ConditionGroup) {
				assert.Equal(t, sampleTree(), out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, found := RewriteGroup(sampleTree(), tt.group, tt.fn)
			require.True(t, found)
			tt.check(t, out)
		})
	}
}

func TestFindGroup(t *testing.T) {
	g, ok := FindGroup(sampleTree(), "k")
	require.True(t, ok)
	assert.Equal(t, valueobjects.ConditionID("k"), g.ID)

	_, ok = FindGroup(sampleTree(), "c1")
	assert.False(t, ok, "leaves are not groups")
}

func TestGroupLevel(t *testing.T) {
	root := sampleTree()
	root, _ = RewriteGroup(root, "k", AppendChild(aggregates.ConditionGroup{ID: "deep", Operator: aggregates.OperatorOr}))

	tests := []struct {
		id    valueobjects.ConditionID
		level int
		found bool
	}{
		{"root", 1, true},
		{"h", 2, true},
		{"deep", 3, true},
		{"c1", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			level, found := GroupLevel(root, tt.id)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.level, level)
		})
	}
}
