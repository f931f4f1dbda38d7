package stores

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"journeybuilder/domain/config"
	"journeybuilder/domain/core/aggregates"
	"journeybuilder/domain/core/entities"
	"journeybuilder/domain/core/valueobjects"
	"journeybuilder/domain/events"
	"journeybuilder/domain/services"
)

// JourneyStore owns the journey catalog and the working graph of the journey
// being edited. Mutations keyed by an id that does not exist are silent
// no-ops. The working graph is a copy of the current journey's graph and is
// written back only by SaveCurrentJourney.
type JourneyStore struct {
	mu sync.RWMutex

	journeys []aggregates.Journey
	current  *aggregates.Journey
	nodes    []entities.JourneyNode
	edges    []entities.Edge
	selected valueobjects.NodeID

	cfg     *config.DomainConfig
	persist *Persister
	events  emitter
	logger  *zap.Logger
	now     func() time.Time
}

type journeySnapshot struct {
	Journeys []aggregates.Journey `json:"journeys"`
}

// NewJourneyStore creates an empty store
func NewJourneyStore(cfg *config.DomainConfig, deps Dependencies) *JourneyStore {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	deps = deps.withDefaults()
	return &JourneyStore{
		journeys: []aggregates.Journey{},
		nodes:    []entities.JourneyNode{},
		edges:    []entities.Edge{},
		cfg:      cfg,
		persist:  deps.Persister,
		events:   deps.emitter(),
		logger:   deps.Logger,
		now:      deps.Clock,
	}
}

// Restore loads the persisted catalog. When nothing has been persisted yet
// the seed journeys, if any, become the catalog and are persisted.
func (s *JourneyStore) Restore(ctx context.Context, seed []aggregates.Journey) error {
	var snap journeySnapshot
	found, err := s.persist.Load(ctx, JourneySlot, &snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case found:
		s.journeys = normalizeJourneys(snap.Journeys)
		s.logger.Info("Restored journey catalog", zap.Int("journeys", len(s.journeys)))
	case len(seed) > 0:
		s.journeys = normalizeJourneys(seed)
		s.logger.Info("Seeded journey catalog", zap.Int("journeys", len(s.journeys)))
		s.persistLocked()
	}
	return nil
}

func normalizeJourneys(in []aggregates.Journey) []aggregates.Journey {
	out := make([]aggregates.Journey, 0, len(in))
	for _, j := range in {
		j = j.Clone()
		if j.Status == "" {
			j.Status = aggregates.StatusDraft
		}
		out = append(out, j)
	}
	return out
}

// Reads

// Journeys returns a copy of the catalog in insertion order
func (s *JourneyStore) Journeys() []aggregates.Journey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]aggregates.Journey, len(s.journeys))
	for i, j := range s.journeys {
		out[i] = j.Clone()
	}
	return out
}

// Journey returns a copy of the catalog entry with the given id
func (s *JourneyStore) Journey(id valueobjects.JourneyID) (aggregates.Journey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.journeys[i].Clone(), true
	}
	return aggregates.Journey{}, false
}

// CurrentJourney returns the journey being edited
func (s *JourneyStore) CurrentJourney() (aggregates.Journey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return aggregates.Journey{}, false
	}
	return s.current.Clone(), true
}

// Nodes returns a copy of the working node collection
func (s *JourneyStore) Nodes() []entities.JourneyNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aggregates.CloneNodes(s.nodes)
}

// Edges returns a copy of the working edge collection
func (s *JourneyStore) Edges() []entities.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aggregates.CloneEdges(s.edges)
}

// Node returns the working node with the given id
func (s *JourneyStore) Node(id valueobjects.NodeID) (entities.JourneyNode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.nodeIndex(id); i >= 0 {
		return s.nodes[i].Clone(), true
	}
	return entities.JourneyNode{}, false
}

// SelectedNodeID returns the selection, or "" when nothing is selected
func (s *JourneyStore) SelectedNodeID() valueobjects.NodeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Working graph

// SetCurrentJourney makes j the journey under edit, replacing the working
// graph with a copy of its persisted one. nil clears the editor. The catalog
// is not touched.
func (s *JourneyStore) SetCurrentJourney(j *aggregates.Journey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCurrentLocked(j)
}

// OpenJourney makes the catalog entry with the given id current
func (s *JourneyStore) OpenJourney(id valueobjects.JourneyID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	j := s.journeys[i]
	s.setCurrentLocked(&j)
	return true
}

func (s *JourneyStore) setCurrentLocked(j *aggregates.Journey) {
	s.selected = ""
	if j == nil {
		s.current = nil
		s.nodes = []entities.JourneyNode{}
		s.edges = []entities.Edge{}
		return
	}
	c := j.Clone()
	s.current = &c
	s.nodes = aggregates.CloneNodes(c.Nodes)
	s.edges = aggregates.CloneEdges(c.Edges)
}

// SetNodes replaces the working node collection
func (s *JourneyStore) SetNodes(nodes []entities.JourneyNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = aggregates.CloneNodes(nodes)
}

// SetEdges replaces the working edge collection
func (s *JourneyStore) SetEdges(edges []entities.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = aggregates.CloneEdges(edges)
}

// ApplyNodeChanges folds a batch of canvas deltas into the working nodes
func (s *JourneyStore) ApplyNodeChanges(changes []services.NodeChange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = services.ApplyNodeChanges(changes, s.nodes)
}

// ApplyEdgeChanges folds a batch of canvas deltas into the working edges
func (s *JourneyStore) ApplyEdgeChanges(changes []services.EdgeChange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = services.ApplyEdgeChanges(changes, s.edges)
}

// Connect appends a new edge whose label is derived from the source node.
// Parallel edges between the same ports are allowed.
func (s *JourneyStore) Connect(conn entities.Connection) entities.Edge {
	s.mu.Lock()
	defer s.mu.Unlock()

	var source *entities.JourneyNode
	if i := s.nodeIndex(conn.Source); i >= 0 {
		source = &s.nodes[i]
	}
	edge := entities.NewEdge(conn, services.DeriveEdgeLabel(source, conn.SourceHandle))

	edges := make([]entities.Edge, 0, len(s.edges)+1)
	edges = append(edges, s.edges...)
	s.edges = append(edges, edge)
	return edge
}

// AddNode appends node to the working graph. Id uniqueness is the caller's
// responsibility.
func (s *JourneyStore) AddNode(node entities.JourneyNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes := make([]entities.JourneyNode, 0, len(s.nodes)+1)
	nodes = append(nodes, s.nodes...)
	s.nodes = append(nodes, node.Clone())
}

// UpdateNode shallow-merges patch into the node's data
func (s *JourneyStore) UpdateNode(id valueobjects.NodeID, patch entities.NodeDataPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.nodeIndex(id)
	if i < 0 {
		return
	}
	nodes := aggregates.CloneNodes(s.nodes)
	nodes[i].Data = nodes[i].Data.Merge(patch)
	s.nodes = nodes
}

// DeleteNode removes the node and every edge touching it, and clears the
// selection if it pointed at the node. Deleting an absent id changes nothing.
func (s *JourneyStore) DeleteNode(id valueobjects.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := make([]entities.JourneyNode, 0, len(s.nodes))
	for _, n := range s.nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}
	edges := make([]entities.Edge, 0, len(s.edges))
	for _, e := range s.edges {
		if !e.Touches(id) {
			edges = append(edges, e)
		}
	}
	s.nodes = nodes
	s.edges = edges
	if s.selected == id {
		s.selected = ""
	}
}

// DuplicateNode appends a copy of the node under a fresh id, offset on the
// canvas. Incident edges are not copied.
func (s *JourneyStore) DuplicateNode(id valueobjects.NodeID) (entities.JourneyNode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.nodeIndex(id)
	if i < 0 {
		return entities.JourneyNode{}, false
	}

	dup := s.nodes[i].Clone()
	dup.ID = valueobjects.NewNodeID(dup.Type)
	dup.Data.ID = dup.ID
	dup.Position = dup.Position.Translate(s.cfg.DuplicateOffsetX, s.cfg.DuplicateOffsetY)
	dup.Selected = false
	dup.Dragging = false

	nodes := make([]entities.JourneyNode, 0, len(s.nodes)+1)
	nodes = append(nodes, s.nodes...)
	s.nodes = append(nodes, dup)
	return dup.Clone(), true
}

// SelectNode sets the selection without checking that the node exists.
// An empty id clears it.
func (s *JourneyStore) SelectNode(id valueobjects.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
}

// Catalog

// CreateJourney appends a new empty draft journey and returns it. It does not
// become current.
func (s *JourneyStore) CreateJourney(name, description string) aggregates.Journey {
	s.mu.Lock()
	j := aggregates.NewJourney(name, description, s.cfg.InitialJourneyVersion, s.now())
	s.journeys = append(s.cloneCatalog(), j)
	s.persistLocked()
	s.mu.Unlock()

	s.events.emit(journeyEvent(events.TypeJourneyCreated, j))
	return j.Clone()
}

// UpdateJourney shallow-merges patch into the catalog entry
func (s *JourneyStore) UpdateJourney(id valueobjects.JourneyID, patch aggregates.JourneyPatch) {
	s.mutateJourney(id, events.TypeJourneyUpdated, func(j *aggregates.Journey, now time.Time) {
		j.Apply(patch, now)
	})
}

// PublishJourney marks the journey published and, when configured, bumps its
// version
func (s *JourneyStore) PublishJourney(id valueobjects.JourneyID) {
	s.mutateJourney(id, events.TypeJourneyPublished, func(j *aggregates.Journey, now time.Time) {
		j.Publish(now, s.cfg.BumpVersionOnPublish)
	})
}

// PauseJourney marks the journey paused
func (s *JourneyStore) PauseJourney(id valueobjects.JourneyID) {
	s.mutateJourney(id, events.TypeJourneyPaused, func(j *aggregates.Journey, now time.Time) {
		j.Pause(now)
	})
}

// ArchiveJourney marks the journey archived
func (s *JourneyStore) ArchiveJourney(id valueobjects.JourneyID) {
	s.mutateJourney(id, events.TypeJourneyArchived, func(j *aggregates.Journey, now time.Time) {
		j.Archive(now)
	})
}

// mutateJourney applies fn to a copy of the catalog entry and commits it.
// The current journey is a separate copy and is left alone.
func (s *JourneyStore) mutateJourney(id valueobjects.JourneyID, eventType string, fn func(*aggregates.Journey, time.Time)) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	catalog := s.cloneCatalog()
	fn(&catalog[i], s.now())
	s.journeys = catalog
	updated := catalog[i]
	if s.current != nil && s.current.ID == id {
		cur := updated.Clone()
		s.current = &cur
	}
	s.persistLocked()
	s.mu.Unlock()

	s.events.emit(journeyEvent(eventType, updated))
}

// DeleteJourney removes the journey and clears the editor reference to it
func (s *JourneyStore) DeleteJourney(id valueobjects.JourneyID) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.journeys[i]
	catalog := make([]aggregates.Journey, 0, len(s.journeys)-1)
	catalog = append(catalog, s.journeys[:i]...)
	s.journeys = append(catalog, s.journeys[i+1:]...)
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.persistLocked()
	s.mu.Unlock()

	s.events.emit(journeyEvent(events.TypeJourneyDeleted, removed))
}

// SaveCurrentJourney writes the working graph into the current journey and
// its catalog entry. Only nodes, edges and updatedAt change; status, version
// and metadata are taken from the catalog entry. Without a current journey it
// does nothing.
func (s *JourneyStore) SaveCurrentJourney() {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}

	catalog := s.cloneCatalog()
	base := *s.current
	i := s.indexOf(base.ID)
	if i >= 0 {
		base = catalog[i]
	}
	saved := base.Clone()
	saved.ReplaceGraph(s.nodes, s.edges, s.now())
	current := saved.Clone()
	s.current = &current

	if i >= 0 {
		catalog[i] = saved.Clone()
	}
	s.journeys = catalog
	s.persistLocked()
	s.mu.Unlock()

	s.logger.Debug("Saved current journey",
		zap.String("journey_id", saved.ID.String()),
		zap.Int("nodes", len(saved.Nodes)),
		zap.Int("edges", len(saved.Edges)))
	s.events.emit(journeyEvent(events.TypeJourneySaved, saved))
}

func (s *JourneyStore) persistLocked() {
	s.persist.Save(JourneySlot, journeySnapshot{Journeys: s.journeys})
}

func (s *JourneyStore) cloneCatalog() []aggregates.Journey {
	out := make([]aggregates.Journey, len(s.journeys))
	copy(out, s.journeys)
	return out
}

func (s *JourneyStore) indexOf(id valueobjects.JourneyID) int {
	for i := range s.journeys {
		if s.journeys[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *JourneyStore) nodeIndex(id valueobjects.NodeID) int {
	for i := range s.nodes {
		if s.nodes[i].ID == id {
			return i
		}
	}
	return -1
}

func journeyEvent(eventType string, j aggregates.Journey) events.DomainEvent {
	return events.NewJourneyEvent(eventType, j.ID, j.Name, string(j.Status), j.Version, len(j.Nodes), len(j.Edges), j.UpdatedAt)
}
