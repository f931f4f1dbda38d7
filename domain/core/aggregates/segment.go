package aggregates

import (
	"time"

	"journeybuilder/domain/core/valueobjects"
)

// Segment is a named audience filter
type Segment struct {
	ID          valueobjects.SegmentID `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Conditions  ConditionGroup         `json:"conditions"`
	Count       int                    `json:"count"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// NewSegment creates a segment whose root is an empty AND group
func NewSegment(name, description string, now time.Time) Segment {
	return Segment{
		ID:          valueobjects.NewSegmentID(),
		Name:        name,
		Description: description,
		Conditions:  NewConditionGroup(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SegmentPatch is a shallow update of segment metadata
type SegmentPatch struct {
	Name        *string
	Description *string
	Count       *int
}

// Apply merges p and refreshes UpdatedAt
func (s *Segment) Apply(p SegmentPatch, now time.Time) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Count != nil {
		s.Count = *p.Count
	}
	s.UpdatedAt = now
}

// Clone returns a deep copy of the segment
func (s Segment) Clone() Segment {
	out := s
	out.Conditions = s.Conditions.Clone()
	return out
}
