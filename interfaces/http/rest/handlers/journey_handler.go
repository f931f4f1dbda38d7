package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"journeybuilder/application/stores"
	"journeybuilder/domain/config"
	"journeybuilder/domain/core/aggregates"
	"journeybuilder/domain/core/entities"
	"journeybuilder/domain/core/valueobjects"
	"journeybuilder/pkg/common"
	pkgerrors "journeybuilder/pkg/errors"
)

// JourneyHandler serves the journey catalog
type JourneyHandler struct {
	base
	store *stores.JourneyStore
	cfg   *config.DomainConfig
}

// NewJourneyHandler creates a new journey handler
func NewJourneyHandler(store *stores.JourneyStore, cfg *config.DomainConfig, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *JourneyHandler {
	return &JourneyHandler{base: newBase(errs, logger), store: store, cfg: cfg}
}

// CreateJourneyRequest represents the request body for creating a journey
type CreateJourneyRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty" validate:"max=1000"`
}

// UpdateJourneyRequest represents the request body for updating a journey
type UpdateJourneyRequest struct {
	Name        *string                  `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string                  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Tags        []string                 `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	Status      *string                  `json:"status,omitempty" validate:"omitempty,oneof=draft published paused archived"`
	Stats       *aggregates.JourneyStats `json:"stats,omitempty"`
}

// EditorStateResponse is the working graph of the open journey
type EditorStateResponse struct {
	Journey        *aggregates.Journey    `json:"journey"`
	Nodes          []entities.JourneyNode `json:"nodes"`
	Edges          []entities.Edge        `json:"edges"`
	SelectedNodeID valueobjects.NodeID    `json:"selectedNodeId,omitempty"`
}

// ListJourneys handles GET /journeys
func (h *JourneyHandler) ListJourneys(w http.ResponseWriter, r *http.Request) {
	journeys := h.store.Journeys()

	if status := r.URL.Query().Get("status"); status != "" {
		if !aggregates.JourneyStatus(status).IsValid() {
			h.fail(w, r, pkgerrors.NewValidationError(fmt.Sprintf("unknown status %q", status)))
			return
		}
		filtered := journeys[:0]
		for _, j := range journeys {
			if string(j.Status) == status {
				filtered = append(filtered, j)
			}
		}
		journeys = filtered
	}

	params := common.ExtractPaginationParams(r)
	meta := common.NewMeta(r)
	meta.Pagination = common.BuildPaginationMeta(params.Page, params.PageSize, len(journeys))
	common.RespondWithMeta(w, http.StatusOK, common.Paginate(journeys, params), meta)
}

// CreateJourney handles POST /journeys
func (h *JourneyHandler) CreateJourney(w http.ResponseWriter, r *http.Request) {
	var req CreateJourneyRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.checkName(req.Name); err != nil {
		h.fail(w, r, err)
		return
	}

	journey := h.store.CreateJourney(req.Name, req.Description)
	h.logger.Info("Journey created",
		zap.String("journey_id", journey.ID.String()),
		zap.String("name", journey.Name))
	h.created(w, r, journey)
}

// GetJourney handles GET /journeys/{journeyID}
func (h *JourneyHandler) GetJourney(w http.ResponseWriter, r *http.Request) {
	journey, ok := h.store.Journey(journeyID(r))
	if !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("journey"))
		return
	}
	h.ok(w, r, journey)
}

// UpdateJourney handles PATCH /journeys/{journeyID}
func (h *JourneyHandler) UpdateJourney(w http.ResponseWriter, r *http.Request) {
	id := journeyID(r)
	if _, ok := h.store.Journey(id); !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("journey"))
		return
	}

	var req UpdateJourneyRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Name != nil {
		if err := h.checkName(*req.Name); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	patch := aggregates.JourneyPatch{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		Stats:       req.Stats,
	}
	if req.Status != nil {
		status := aggregates.JourneyStatus(*req.Status)
		patch.Status = &status
	}
	h.store.UpdateJourney(id, patch)
	h.respondJourney(w, r, id)
}

// DeleteJourney handles DELETE /journeys/{journeyID}
func (h *JourneyHandler) DeleteJourney(w http.ResponseWriter, r *http.Request) {
	id := journeyID(r)
	if _, ok := h.store.Journey(id); !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("journey"))
		return
	}
	h.store.DeleteJourney(id)
	noContent(w)
}

// PublishJourney handles POST /journeys/{journeyID}/publish
func (h *JourneyHandler) PublishJourney(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.store.PublishJourney)
}

// PauseJourney handles POST /journeys/{journeyID}/pause
func (h *JourneyHandler) PauseJourney(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.store.PauseJourney)
}

// ArchiveJourney handles POST /journeys/{journeyID}/archive
func (h *JourneyHandler) ArchiveJourney(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.store.ArchiveJourney)
}

// OpenJourney handles POST /journeys/{journeyID}/open. The journey's graph
// becomes the editor's working graph.
func (h *JourneyHandler) OpenJourney(w http.ResponseWriter, r *http.Request) {
	if !h.store.OpenJourney(journeyID(r)) {
		h.fail(w, r, pkgerrors.NewNotFoundError("journey"))
		return
	}
	h.ok(w, r, editorState(h.store))
}

func (h *JourneyHandler) transition(w http.ResponseWriter, r *http.Request, fn func(valueobjects.JourneyID)) {
	id := journeyID(r)
	if _, ok := h.store.Journey(id); !ok {
		h.fail(w, r, pkgerrors.NewNotFoundError("journey"))
		return
	}
	fn(id)
	h.respondJourney(w, r, id)
}

func (h *JourneyHandler) respondJourney(w http.ResponseWriter, r *http.Request, id valueobjects.JourneyID) {
	journey, ok := h.store.Journey(id)
	if !ok {
		// deleted concurrently
		h.fail(w, r, pkgerrors.NewNotFoundError("journey"))
		return
	}
	h.ok(w, r, journey)
}

func (h *JourneyHandler) checkName(name string) error {
	if h.cfg != nil && h.cfg.MaxJourneyNameLength > 0 && len([]rune(name)) > h.cfg.MaxJourneyNameLength {
		return pkgerrors.NewLimitError(pkgerrors.CodeNameTooLong, h.cfg.MaxJourneyNameLength,
			fmt.Sprintf("name must be at most %d characters", h.cfg.MaxJourneyNameLength))
	}
	return nil
}

func journeyID(r *http.Request) valueobjects.JourneyID {
	return valueobjects.JourneyID(chi.URLParam(r, "journeyID"))
}

func editorState(store *stores.JourneyStore) EditorStateResponse {
	state := EditorStateResponse{
		Nodes:          store.Nodes(),
		Edges:          store.Edges(),
		SelectedNodeID: store.SelectedNodeID(),
	}
	if current, ok := store.CurrentJourney(); ok {
		state.Journey = &current
	}
	return state
}
