package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"journeybuilder/application/stores"
	"journeybuilder/domain/config"
	"journeybuilder/domain/core/aggregates"
	"journeybuilder/domain/core/valueobjects"
	"journeybuilder/domain/services"
	pkgerrors "journeybuilder/pkg/errors"
)

// SegmentHandler serves the segment catalog and the condition builder
type SegmentHandler struct {
	base
	store *stores.SegmentStore
	cfg   *config.DomainConfig
}

// NewSegmentHandler creates a new segment handler
func NewSegmentHandler(store *stores.SegmentStore, cfg *config.DomainConfig, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *SegmentHandler {
	return &SegmentHandler{base: newBase(errs, logger), store: store, cfg: cfg}
}

// CreateSegmentRequest represents the request body for creating a segment
type CreateSegmentRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description,omitempty" validate:"max=1000"`
}

// UpdateSegmentRequest represents the request body for updating a segment
type UpdateSegmentRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Count       *int    `json:"count,omitempty" validate:"omitempty,gte=0"`
}

// AddConditionRequest describes a new leaf condition
type AddConditionRequest struct {
	Type      string `json:"type" validate:"required,oneof=attribute event"`
	Attribute string `json:"attribute,omitempty"`
	Event     string `json:"event,omitempty"`
	Operator  string `json:"operator" validate:"required"`
	Value     any    `json:"value"`
}

// UpdateConditionRequest patches a leaf. A present "value", even null, is
// assigned.
type UpdateConditionRequest struct {
	Type      *string         `json:"type,omitempty" validate:"omitempty,oneof=attribute event"`
	Attribute *string         `json:"attribute,omitempty"`
	Event     *string         `json:"event,omitempty"`
	Operator  *string         `json:"operator,omitempty" validate:"omitempty,min=1"`
	Value     json.RawMessage `json:"value,omitempty"`
}

// ListSegments handles GET /segments
func (h *SegmentHandler) ListSegments(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, h.store.Segments())
}

// CreateSegment handles POST /segments
func (h *SegmentHandler) CreateSegment(w http.ResponseWriter, r *http.Request) {
	var req CreateSegmentRequest
	if !h.decode(w, r, &req) {
		return
	}
	segment := h.store.CreateSegment(req.Name, req.Description)
	h.logger.Info("Segment created",
		zap.String("segment_id", segment.ID.String()),
		zap.String("name", segment.Name))
	h.created(w, r, segment)
}

// UpdateSegment handles PATCH /segments/{segmentID}
func (h *SegmentHandler) UpdateSegment(w http.ResponseWriter, r *http.Request) {
	id := segmentID(r)
	if _, ok := h.store.Segment(id); !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("segment"))
		return
	}

	var req UpdateSegmentRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.store.UpdateSegment(id, aggregates.SegmentPatch{
		Name:        req.Name,
		Description: req.Description,
		Count:       req.Count,
	})

	segment, ok := h.store.Segment(id)
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("segment"))
		return
	}
	h.ok(w, r, segment)
}

// DeleteSegment handles DELETE /segments/{segmentID}
func (h *SegmentHandler) DeleteSegment(w http.ResponseWriter, r *http.Request) {
	id := segmentID(r)
	if _, ok := h.store.Segment(id); !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("segment"))
		return
	}
	h.store.DeleteSegment(id)
	noContent(w)
}

// OpenSegment handles POST /segments/{segmentID}/open
func (h *SegmentHandler) OpenSegment(w http.ResponseWriter, r *http.Request) {
	if !h.store.OpenSegment(segmentID(r)) {
		h.fail(w, r, pkgerrors.NewNotFoundError("segment"))
		return
	}
	h.respondCurrent(w, r)
}

// GetCurrentSegment handles GET /segments/current
func (h *SegmentHandler) GetCurrentSegment(w http.ResponseWriter, r *http.Request) {
	h.respondCurrent(w, r)
}

// SaveCurrentSegment handles POST /segments/current/save
func (h *SegmentHandler) SaveCurrentSegment(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.store.CurrentSegment(); !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("current segment"))
		return
	}
	h.store.SaveCurrentSegment()
	h.respondCurrent(w, r)
}

// AddCondition handles POST /segments/current/groups/{groupID}/conditions
func (h *SegmentHandler) AddCondition(w http.ResponseWriter, r *http.Request) {
	var req AddConditionRequest
	if !h.decode(w, r, &req) {
		return
	}

	condition := aggregates.Condition{
		ID:        valueobjects.NewConditionID(),
		Type:      aggregates.ConditionType(req.Type),
		Attribute: req.Attribute,
		Event:     req.Event,
		Operator:  req.Operator,
		Value:     req.Value,
	}
	if !h.store.AddCondition(groupID(r), condition) {
		h.fail(w, r, pkgerrors.NewNotFoundError("condition group"))
		return
	}
	h.created(w, r, condition)
}

// UpdateCondition handles PATCH /segments/current/groups/{groupID}/conditions/{conditionID}.
// Only direct leaf children of the group can be updated.
func (h *SegmentHandler) UpdateCondition(w http.ResponseWriter, r *http.Request) {
	gid, cid := groupID(r), conditionID(r)

	current, ok := h.store.CurrentSegment()
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("current segment"))
		return
	}
	group, ok := services.FindGroup(current.Conditions, gid)
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("condition group"))
		return
	}
	if !hasLeaf(group, cid) {
		h.fail(w, r, pkgerrors.NewNotFoundError("condition"))
		return
	}

	var req UpdateConditionRequest
	if !h.decode(w, r, &req) {
		return
	}

	patch := aggregates.ConditionPatch{
		Attribute: req.Attribute,
		Event:     req.Event,
		Operator:  req.Operator,
	}
	if req.Type != nil {
		t := aggregates.ConditionType(*req.Type)
		patch.Type = &t
	}
	if req.Value != nil {
		if err := json.Unmarshal(req.Value, &patch.Value); err != nil {
			h.fail(w, r, pkgerrors.NewValidationError("invalid value").WithCause(err))
			return
		}
		patch.SetValue = true
	}

	if !h.store.UpdateCondition(gid, cid, patch) {
		h.fail(w, r, pkgerrors.NewNotFoundError("condition"))
		return
	}
	h.respondCurrent(w, r)
}

// RemoveCondition handles DELETE /segments/current/groups/{groupID}/conditions/{conditionID}.
// Only direct children of the group are considered.
func (h *SegmentHandler) RemoveCondition(w http.ResponseWriter, r *http.Request) {
	gid, cid := groupID(r), conditionID(r)

	current, ok := h.store.CurrentSegment()
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("current segment"))
		return
	}
	group, ok := services.FindGroup(current.Conditions, gid)
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("condition group"))
		return
	}
	if !hasChild(group, cid) {
		h.fail(w, r, pkgerrors.NewNotFoundError("condition"))
		return
	}

	h.store.RemoveCondition(gid, cid)
	noContent(w)
}

// AddConditionGroup handles POST /segments/current/groups/{groupID}/groups
func (h *SegmentHandler) AddConditionGroup(w http.ResponseWriter, r *http.Request) {
	parent := groupID(r)

	current, ok := h.store.CurrentSegment()
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("current segment"))
		return
	}
	level, ok := services.GroupLevel(current.Conditions, parent)
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("condition group"))
		return
	}
	if h.cfg != nil && h.cfg.MaxConditionDepth > 0 && level+1 > h.cfg.MaxConditionDepth {
		h.fail(w, r, pkgerrors.NewLimitError(pkgerrors.CodeDepthLimit, h.cfg.MaxConditionDepth,
			fmt.Sprintf("condition groups nest at most %d levels", h.cfg.MaxConditionDepth)))
		return
	}

	id, ok := h.store.AddConditionGroup(parent)
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("condition group"))
		return
	}
	h.created(w, r, map[string]valueobjects.ConditionID{"id": id})
}

// ToggleGroupOperator handles POST /segments/current/groups/{groupID}/toggle
func (h *SegmentHandler) ToggleGroupOperator(w http.ResponseWriter, r *http.Request) {
	if !h.store.ToggleGroupOperator(groupID(r)) {
		h.fail(w, r, pkgerrors.NewNotFoundError("condition group"))
		return
	}
	h.respondCurrent(w, r)
}

func (h *SegmentHandler) respondCurrent(w http.ResponseWriter, r *http.Request) {
	current, ok := h.store.CurrentSegment()
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("current segment"))
		return
	}
	h.ok(w, r, current)
}

func hasChild(group aggregates.ConditionGroup, id valueobjects.ConditionID) bool {
	for _, child := range group.Conditions {
		if child.NodeID() == id {
			return true
		}
	}
	return false
}

func hasLeaf(group aggregates.ConditionGroup, id valueobjects.ConditionID) bool {
	for _, child := range group.Conditions {
		if leaf, ok := child.(aggregates.Condition); ok && leaf.ID == id {
			return true
		}
	}
	return false
}

func segmentID(r *http.Request) valueobjects.SegmentID {
	return valueobjects.SegmentID(chi.URLParam(r, "segmentID"))
}

func groupID(r *http.Request) valueobjects.ConditionID {
	return valueobjects.ConditionID(chi.URLParam(r, "groupID"))
}

func conditionID(r *http.Request) valueobjects.ConditionID {
	return valueobjects.ConditionID(chi.URLParam(r, "conditionID"))
}
