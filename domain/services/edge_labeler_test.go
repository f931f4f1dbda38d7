package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"journeybuilder/domain/core/entities"
	"journeybuilder/domain/core/valueobjects"
)

func node(t valueobjects.NodeType, c valueobjects.NodeCategory) *entities.JourneyNode {
	return &entities.JourneyNode{
		ID:   valueobjects.NodeID(string(t) + "-1"),
		Type: t,
		Data: entities.NodeData{Type: t, Category: c},
	}
}

func TestDeriveEdgeLabel(t *testing.T) {
	condition := node(valueobjects.TypeCheckUserAttribute, valueobjects.CategoryCondition)
	action := node(valueobjects.TypeSendEmail, valueobjects.CategoryAction)

	tests := []struct {
		name     string
		source   *entities.JourneyNode
		handle   string
		wantText string
		wantType valueobjects.LabelType
	}{
		{"condition yes", condition, "yes", "Yes", valueobjects.LabelSuccess},
		{"condition true", condition, "true", "Yes", valueobjects.LabelSuccess},
		{"condition no", condition, "no", "No", valueobjects.LabelFailure},
		{"condition false", condition, "false", "No", valueobjects.LabelFailure},
		{"condition without handle", condition, "", "Match", valueobjects.LabelSuccess},
		{"condition other handle", condition, "maybe", "Match", valueobjects.LabelSuccess},
		{"action on-bounce", action, "on-bounce", "On Bounce", valueobjects.LabelFailure},
		{"action on-delivered", action, "on-delivered", "On Delivered", valueobjects.LabelSuccess},
		{"action on-dismiss", action, "on-dismiss", "On Dismiss", valueobjects.LabelTimeout},
		{"action on-unsubscribed", action, "on-unsubscribed", "On Unsubscribed", valueobjects.LabelFailure},
		{"action unknown handle", action, "on-something", "", valueobjects.LabelNone},
		{"action default handle", action, "default", "", valueobjects.LabelNone},
		{"action without handle", action, "", "", valueobjects.LabelNone},
		{"split", node(valueobjects.TypeSplit, valueobjects.CategoryFlow), "a", "Branch", valueobjects.LabelNone},
		{"wait time", node(valueobjects.TypeWaitTime, valueobjects.CategoryFlow), "", "Continue", valueobjects.LabelTimeout},
		{"wait event", node(valueobjects.TypeWaitEvent, valueobjects.CategoryFlow), "", "Continue", valueobjects.LabelTimeout},
		{"end journey", node(valueobjects.TypeEndJourney, valueobjects.CategoryFlow), "", "", valueobjects.LabelNone},
		{"trigger", node(valueobjects.TypeOccurrenceOfEvent, valueobjects.CategoryTrigger), "", "", valueobjects.LabelNone},
		{"unknown source", nil, "yes", "", valueobjects.LabelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label := DeriveEdgeLabel(tt.source, tt.handle)
			assert.Equal(t, tt.wantText, label.Text)
			assert.Equal(t, tt.wantType, label.Type)
		})
	}
}

func TestDeriveEdgeLabel_UsesNodeCategoryOverTypeDefault(t *testing.T) {
	// is-in-segment dropped from the trigger palette keeps the trigger category
	trigger := node(valueobjects.TypeIsInSegment, valueobjects.CategoryTrigger)
	assert.True(t, DeriveEdgeLabel(trigger, "yes").IsEmpty())

	condition := node(valueobjects.TypeIsInSegment, valueobjects.CategoryCondition)
	assert.Equal(t, "Yes", DeriveEdgeLabel(condition, "yes").Text)
}

func TestActionOutcomeHandles_AllLabelled(t *testing.T) {
	action := node(valueobjects.TypeSendSMS, valueobjects.CategoryAction)
	handles := ActionOutcomeHandles()
	assert.Len(t, handles, 12)
	for _, h := range handles {
		assert.False(t, DeriveEdgeLabel(action, h).IsEmpty(), h)
	}
}
