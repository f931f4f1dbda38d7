package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journeybuilder/domain/core/entities"
	"journeybuilder/domain/core/valueobjects"
)

func nodesOf(ids ...string) []entities.JourneyNode {
	out := make([]entities.JourneyNode, 0, len(ids))
	for _, id := range ids {
		out = append(out, entities.JourneyNode{ID: valueobjects.NodeID(id), Type: valueobjects.TypeSendEmail})
	}
	return out
}

func idsOf(nodes []entities.JourneyNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID.String())
	}
	return out
}

func TestApplyNodeChanges(t *testing.T) {
	pos := func(x, y float64) *valueobjects.Position { return &valueobjects.Position{X: x, Y: y} }

	tests := []struct {
		name    string
		changes []NodeChange
		wantIDs []string
		check   func(t *testing.T, out []entities.JourneyNode)
	}{
		{
			name:    "no changes keeps order",
			wantIDs: []string{"a", "b", "c"},
		},
		{
			name:    "remove keeps relative order",
			changes: []NodeChange{{Type: ChangeRemove, ID: "b"}},
			wantIDs: []string{"a", "c"},
		},
		{
			name: "position changes fold in order",
			changes: []NodeChange{
				{Type: ChangePosition, ID: "a", Position: pos(10, 10)},
				{Type: ChangePosition, ID: "a", Position: pos(30, 40)},
			},
			wantIDs: []string{"a", "b", "c"},
			check: func(t *testing.T, out []entities.JourneyNode) {
				assert.Equal(t, valueobjects.Position{X: 30, Y: 40}, out[0].Position)
			},
		},
		{
			name: "select then move",
			changes: []NodeChange{
				{Type: ChangeSelect, ID: "c", Selected: true},
				{Type: ChangePosition, ID: "c", Position: pos(5, 5)},
			},
			wantIDs: []string{"a", "b", "c"},
			check: func(t *testing.T, out []entities.JourneyNode) {
				assert.True(t, out[2].Selected)
				assert.Equal(t, 5.0, out[2].Position.X)
				assert.False(t, out[0].Selected)
			},
		},
		{
			name: "move then remove drops node",
			changes: []NodeChange{
				{Type: ChangePosition, ID: "a", Position: pos(1, 1)},
				{Type: ChangeRemove, ID: "a"},
			},
			wantIDs: []string{"b", "c"},
		},
		{
			name:    "dimensions set width and height",
			changes: []NodeChange{{Type: ChangeDimensions, ID: "b", Dimensions: &valueobjects.Dimensions{Width: 200, Height: 80}}},
			wantIDs: []string{"a", "b", "c"},
			check: func(t *testing.T, out []entities.JourneyNode) {
				require.NotNil(t, out[1].Width)
				require.NotNil(t, out[1].Height)
				assert.Equal(t, 200.0, *out[1].Width)
				assert.Equal(t, 80.0, *out[1].Height)
			},
		},
		{
			name: "add appends after existing nodes",
			changes: []NodeChange{
				{Type: ChangeAdd, Item: &entities.JourneyNode{ID: "d"}},
				{Type: ChangeRemove, ID: "a"},
			},
			wantIDs: []string{"b", "c", "d"},
		},
		{
			name:    "unknown id is ignored",
			changes: []NodeChange{{Type: ChangeRemove, ID: "zzz"}},
			wantIDs: []string{"a", "b", "c"},
		},
		{
			name:    "replace swaps the node",
			changes: []NodeChange{{Type: ChangeReplace, ID: "b", Item: &entities.JourneyNode{ID: "b", Type: valueobjects.TypeSplit}}},
			wantIDs: []string{"a", "b", "c"},
			check: func(t *testing.T, out []entities.JourneyNode) {
				assert.Equal(t, valueobjects.TypeSplit, out[1].Type)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := nodesOf("a", "b", "c")
			out := ApplyNodeChanges(tt.changes, before)

			assert.Equal(t, tt.wantIDs, idsOf(out))
			assert.Equal(t, nodesOf("a", "b", "c"), before, "input must not be modified")
			if tt.check != nil {
				tt.check(t, out)
			}
		})
	}
}

func TestApplyEdgeChanges(t *testing.T) {
	edges := []entities.Edge{{ID: "e1"}, {ID: "e2"}, {ID: "e3"}}

	out := ApplyEdgeChanges([]EdgeChange{
		{Type: ChangeSelect, ID: "e1", Selected: true},
		{Type: ChangeRemove, ID: "e2"},
		{Type: ChangeAdd, Item: &entities.Edge{ID: "e4"}},
		{Type: ChangeSelect, ID: "e1", Selected: false},
	}, edges)

	require.Len(t, out, 3)
	assert.Equal(t, valueobjects.EdgeID("e1"), out[0].ID)
	assert.False(t, out[0].Selected)
	assert.Equal(t, valueobjects.EdgeID("e3"), out[1].ID)
	assert.Equal(t, valueobjects.EdgeID("e4"), out[2].ID)
	assert.Len(t, edges, 3)
}
