package stores

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"journeybuilder/domain/core/aggregates"
	"journeybuilder/domain/core/valueobjects"
	"journeybuilder/domain/events"
	"journeybuilder/domain/services"
)

// SegmentStore owns the segment catalog and the segment whose condition tree
// is being edited. Condition edits change only the current segment; they
// reach the catalog through SaveCurrentSegment.
type SegmentStore struct {
	mu sync.RWMutex

	segments []aggregates.Segment
	current  *aggregates.Segment

	persist *Persister
	events  emitter
	logger  *zap.Logger
	now     func() time.Time
}

type segmentSnapshot struct {
	Segments []aggregates.Segment `json:"segments"`
}

// NewSegmentStore creates an empty store
func NewSegmentStore(deps Dependencies) *SegmentStore {
	deps = deps.withDefaults()
	return &SegmentStore{
		segments: []aggregates.Segment{},
		persist:  deps.Persister,
		events:   deps.emitter(),
		logger:   deps.Logger,
		now:      deps.Clock,
	}
}

// Restore loads the persisted catalog
func (s *SegmentStore) Restore(ctx context.Context) error {
	var snap segmentSnapshot
	found, err := s.persist.Load(ctx, SegmentSlot, &snap)
	if err != nil || !found {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = make([]aggregates.Segment, 0, len(snap.Segments))
	for _, seg := range snap.Segments {
		s.segments = append(s.segments, seg.Clone())
	}
	s.logger.Info("Restored segment catalog", zap.Int("segments", len(s.segments)))
	return nil
}

// Segments returns a copy of the catalog
func (s *SegmentStore) Segments() []aggregates.Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]aggregates.Segment, len(s.segments))
	for i, seg := range s.segments {
		out[i] = seg.Clone()
	}
	return out
}

// Segment returns a copy of the catalog entry with the given id
func (s *SegmentStore) Segment(id valueobjects.SegmentID) (aggregates.Segment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.segments[i].Clone(), true
	}
	return aggregates.Segment{}, false
}

// CurrentSegment returns the segment being edited
func (s *SegmentStore) CurrentSegment() (aggregates.Segment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return aggregates.Segment{}, false
	}
	return s.current.Clone(), true
}

// CreateSegment appends a segment with an empty AND root and returns it.
// It does not become current.
func (s *SegmentStore) CreateSegment(name, description string) aggregates.Segment {
	s.mu.Lock()
	seg := aggregates.NewSegment(name, description, s.now())
	s.segments = append(s.cloneCatalog(), seg)
	s.persistLocked()
	s.mu.Unlock()

	s.events.emit(segmentEvent(events.TypeSegmentCreated, seg))
	return seg.Clone()
}

// UpdateSegment shallow-merges patch into the catalog entry
func (s *SegmentStore) UpdateSegment(id valueobjects.SegmentID, patch aggregates.SegmentPatch) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	catalog := s.cloneCatalog()
	catalog[i].Apply(patch, s.now())
	s.segments = catalog
	updated := catalog[i]
	s.persistLocked()
	s.mu.Unlock()

	s.events.emit(segmentEvent(events.TypeSegmentUpdated, updated))
}

// DeleteSegment removes the segment and clears it as current
func (s *SegmentStore) DeleteSegment(id valueobjects.SegmentID) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.segments[i]
	catalog := make([]aggregates.Segment, 0, len(s.segments)-1)
	catalog = append(catalog, s.segments[:i]...)
	s.segments = append(catalog, s.segments[i+1:]...)
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.persistLocked()
	s.mu.Unlock()

	s.events.emit(segmentEvent(events.TypeSegmentDeleted, removed))
}

// SetCurrentSegment makes a copy of seg the segment under edit. nil clears it.
func (s *SegmentStore) SetCurrentSegment(seg *aggregates.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seg == nil {
		s.current = nil
		return
	}
	c := seg.Clone()
	s.current = &c
}

// OpenSegment makes the catalog entry with the given id current
func (s *SegmentStore) OpenSegment(id valueobjects.SegmentID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	c := s.segments[i].Clone()
	s.current = &c
	return true
}

// SaveCurrentSegment writes the current segment into its catalog entry. A
// current segment missing from the catalog is appended.
func (s *SegmentStore) SaveCurrentSegment() {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	saved := s.current.Clone()
	saved.UpdatedAt = s.now()
	s.current = &saved

	catalog := s.cloneCatalog()
	if i := s.indexOf(saved.ID); i >= 0 {
		catalog[i] = saved.Clone()
	} else {
		catalog = append(catalog, saved.Clone())
	}
	s.segments = catalog
	s.persistLocked()
	s.mu.Unlock()

	s.events.emit(segmentEvent(events.TypeSegmentSaved, saved))
}

// Condition tree editing. Every operation is scoped to the group named by id
// and does nothing without a current segment or when the group is absent.

// AddCondition appends a leaf to the group
func (s *SegmentStore) AddCondition(groupID valueobjects.ConditionID, condition aggregates.Condition) bool {
	return s.rewrite(groupID, services.AppendChild(condition))
}

// UpdateCondition merges patch into a direct leaf child of the group
func (s *SegmentStore) UpdateCondition(groupID, conditionID valueobjects.ConditionID, patch aggregates.ConditionPatch) bool {
	return s.rewrite(groupID, services.PatchLeaf(conditionID, patch))
}

// RemoveCondition drops a direct child, leaf or group, of the group
func (s *SegmentStore) RemoveCondition(groupID, conditionID valueobjects.ConditionID) bool {
	return s.rewrite(groupID, services.RemoveChild(conditionID))
}

// AddConditionGroup appends an empty AND subgroup and returns its id
func (s *SegmentStore) AddConditionGroup(parentGroupID valueobjects.ConditionID) (valueobjects.ConditionID, bool) {
	group := aggregates.NewConditionGroup()
	if !s.rewrite(parentGroupID, services.AppendChild(group)) {
		return "", false
	}
	return group.ID, true
}

// ToggleGroupOperator flips and/or on the group only
func (s *SegmentStore) ToggleGroupOperator(groupID valueobjects.ConditionID) bool {
	return s.rewrite(groupID, services.FlipOperator())
}

// rewrite reports whether the group was found
func (s *SegmentStore) rewrite(groupID valueobjects.ConditionID, fn services.GroupRewrite) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	root, found := services.RewriteGroup(s.current.Conditions, groupID, fn)
	if !found {
		return false
	}
	next := *s.current
	next.Conditions = root
	s.current = &next
	return true
}

func (s *SegmentStore) persistLocked() {
	s.persist.Save(SegmentSlot, segmentSnapshot{Segments: s.segments})
}

func (s *SegmentStore) cloneCatalog() []aggregates.Segment {
	out := make([]aggregates.Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

func (s *SegmentStore) indexOf(id valueobjects.SegmentID) int {
	for i := range s.segments {
		if s.segments[i].ID == id {
			return i
		}
	}
	return -1
}

func segmentEvent(eventType string, seg aggregates.Segment) events.DomainEvent {
	return events.NewSegmentEvent(eventType, seg.ID, seg.Name, seg.Conditions.Depth(), seg.UpdatedAt)
}
