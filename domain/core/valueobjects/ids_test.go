package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNodeID(t *testing.T) {
	id := NewNodeID(TypeSendEmail)

	assert.True(t, strings.HasPrefix(id.String(), "send-email-"))
	assert.False(t, id.IsZero())
	assert.NotEqual(t, id, NewNodeID(TypeSendEmail))
}

func TestGeneratedIDPrefixes(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		prefix string
	}{
		{"edge", NewEdgeID().String(), "edge-"},
		{"journey", NewJourneyID().String(), "journey-"},
		{"segment", NewSegmentID().String(), "segment-"},
		{"group", NewGroupID().String(), "group-"},
		{"condition", NewConditionID().String(), "condition-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(tt.id, tt.prefix), tt.id)
			assert.Len(t, tt.id, len(tt.prefix)+36)
		})
	}
}

func TestNodeID_IsZero(t *testing.T) {
	assert.True(t, NodeID("").IsZero())
	assert.True(t, NodeID("  ").IsZero())
	assert.False(t, NodeID("t1").IsZero())
}
