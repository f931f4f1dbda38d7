package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"journeybuilder/application/stores"
	"journeybuilder/application/templates"
	"journeybuilder/domain/config"
	"journeybuilder/domain/core/entities"
	"journeybuilder/domain/core/valueobjects"
	"journeybuilder/domain/services"
	pkgerrors "journeybuilder/pkg/errors"
)

// EditorHandler serves the working graph of the open journey
type EditorHandler struct {
	base
	store   *stores.JourneyStore
	catalog *templates.Catalog
	cfg     *config.DomainConfig
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(store *stores.JourneyStore, catalog *templates.Catalog, cfg *config.DomainConfig, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *EditorHandler {
	return &EditorHandler{base: newBase(errs, logger), store: store, catalog: catalog, cfg: cfg}
}

// AddNodeRequest places a node built from a palette template
type AddNodeRequest struct {
	Type     string                 `json:"type" validate:"required"`
	Category string                 `json:"category,omitempty" validate:"omitempty,oneof=trigger action condition flow"`
	Position *valueobjects.Position `json:"position" validate:"required"`
}

// UpdateNodeRequest is a shallow patch of node data. Config is decoded
// against the node's type.
type UpdateNodeRequest struct {
	Label        *string         `json:"label,omitempty" validate:"omitempty,max=200"`
	Description  *string         `json:"description,omitempty" validate:"omitempty,max=1000"`
	Config       json.RawMessage `json:"config,omitempty"`
	IsConfigured *bool           `json:"isConfigured,omitempty"`
}

// NodeChangesRequest carries a batch of canvas node changes
type NodeChangesRequest struct {
	Changes []services.NodeChange `json:"changes" validate:"dive"`
}

// EdgeChangesRequest carries a batch of canvas edge changes
type EdgeChangesRequest struct {
	Changes []services.EdgeChange `json:"changes" validate:"dive"`
}

// GetEditor handles GET /editor
func (h *EditorHandler) GetEditor(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, editorState(h.store))
}

// SaveEditor handles POST /editor/save
func (h *EditorHandler) SaveEditor(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.store.CurrentJourney(); !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("current journey"))
		return
	}
	h.store.SaveCurrentJourney()

	current, _ := h.store.CurrentJourney()
	h.logger.Info("Journey saved",
		zap.String("journey_id", current.ID.String()),
		zap.Int("nodes", len(current.Nodes)),
		zap.Int("edges", len(current.Edges)))
	h.ok(w, r, current)
}

// AddNode handles POST /editor/nodes
func (h *EditorHandler) AddNode(w http.ResponseWriter, r *http.Request) {
	var req AddNodeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.checkCapacity(1); err != nil {
		h.fail(w, r, err)
		return
	}

	tpl, ok := h.catalog.Find(valueobjects.NodeType(req.Type), valueobjects.NodeCategory(req.Category))
	if !ok {
		h.fail(w, r, pkgerrors.NewValidationError(fmt.Sprintf("no template for node type %q", req.Type)))
		return
	}
	pos, err := valueobjects.NewPosition(req.Position.X, req.Position.Y)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	node, err := templates.Instantiate(tpl, pos)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.store.AddNode(node)
	h.created(w, r, node)
}

// UpdateNode handles PATCH /editor/nodes/{nodeID}
func (h *EditorHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	id := nodeID(r)
	node, ok := h.store.Node(id)
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("node"))
		return
	}

	var req UpdateNodeRequest
	if !h.decode(w, r, &req) {
		return
	}

	patch := entities.NodeDataPatch{
		Label:        req.Label,
		Description:  req.Description,
		IsConfigured: req.IsConfigured,
	}
	if len(req.Config) > 0 && string(req.Config) != "null" {
		cfg, err := valueobjects.DecodeNodeConfig(node.Type, req.Config)
		if err == nil {
			err = valueobjects.ValidateNodeConfig(node.Type, cfg)
		}
		if err != nil {
			h.fail(w, r, err)
			return
		}
		patch.Config = cfg
	}

	h.store.UpdateNode(id, patch)
	updated, _ := h.store.Node(id)
	h.ok(w, r, updated)
}

// DeleteNode handles DELETE /editor/nodes/{nodeID}
func (h *EditorHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	id := nodeID(r)
	if _, ok := h.store.Node(id); !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("node"))
		return
	}
	h.store.DeleteNode(id)
	noContent(w)
}

// DuplicateNode handles POST /editor/nodes/{nodeID}/duplicate
func (h *EditorHandler) DuplicateNode(w http.ResponseWriter, r *http.Request) {
	if err := h.checkCapacity(1); err != nil {
		h.fail(w, r, err)
		return
	}
	dup, ok := h.store.DuplicateNode(nodeID(r))
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("node"))
		return
	}
	h.created(w, r, dup)
}

// SelectNode handles POST /editor/nodes/{nodeID}/select
func (h *EditorHandler) SelectNode(w http.ResponseWriter, r *http.Request) {
	id := nodeID(r)
	if _, ok := h.store.Node(id); !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("node"))
		return
	}
	h.store.SelectNode(id)
	h.ok(w, r, map[string]valueobjects.NodeID{"selectedNodeId": id})
}

// Connect handles POST /editor/connect
func (h *EditorHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var conn entities.Connection
	if !h.decode(w, r, &conn) {
		return
	}
	for _, id := range []valueobjects.NodeID{conn.Source, conn.Target} {
		if _, ok := h.store.Node(id); !ok {
			h.fail(w, r, pkgerrors.NewNotFoundError(fmt.Sprintf("node %s", id)))
			return
		}
	}

	edge := h.store.Connect(conn)
	h.created(w, r, edge)
}

// ApplyNodeChanges handles POST /editor/node-changes
func (h *EditorHandler) ApplyNodeChanges(w http.ResponseWriter, r *http.Request) {
	var req NodeChangesRequest
	if !h.decode(w, r, &req) {
		return
	}

	adds := 0
	for _, c := range req.Changes {
		if c.Type != services.ChangeAdd && c.Type != services.ChangeReplace {
			continue
		}
		if c.Item == nil {
			h.fail(w, r, pkgerrors.NewValidationError(fmt.Sprintf("%s changes require an item", c.Type)))
			return
		}
		if err := valueobjects.ValidateNodeConfig(c.Item.Type, c.Item.Data.Config); err != nil {
			h.fail(w, r, err)
			return
		}
		if c.Type == services.ChangeAdd {
			adds++
		}
	}
	if err := h.checkCapacity(adds); err != nil {
		h.fail(w, r, err)
		return
	}

	h.store.ApplyNodeChanges(req.Changes)
	h.ok(w, r, h.store.Nodes())
}

// ApplyEdgeChanges handles POST /editor/edge-changes
func (h *EditorHandler) ApplyEdgeChanges(w http.ResponseWriter, r *http.Request) {
	var req EdgeChangesRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.store.ApplyEdgeChanges(req.Changes)
	h.ok(w, r, h.store.Edges())
}

func (h *EditorHandler) checkCapacity(adding int) error {
	if h.cfg == nil || h.cfg.MaxNodesPerJourney <= 0 || adding == 0 {
		return nil
	}
	if len(h.store.Nodes())+adding > h.cfg.MaxNodesPerJourney {
		return pkgerrors.NewLimitError(pkgerrors.CodeNodeLimit, h.cfg.MaxNodesPerJourney,
			fmt.Sprintf("a journey holds at most %d nodes", h.cfg.MaxNodesPerJourney))
	}
	return nil
}

func nodeID(r *http.Request) valueobjects.NodeID {
	return valueobjects.NodeID(chi.URLParam(r, "nodeID"))
}
