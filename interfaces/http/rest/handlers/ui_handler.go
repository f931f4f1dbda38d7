package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"journeybuilder/application/stores"
	"journeybuilder/domain/core/aggregates"
	pkgerrors "journeybuilder/pkg/errors"
)

// UIHandler serves the editor chrome state
type UIHandler struct {
	base
	store *stores.UIStore
}

// NewUIHandler creates a new UI handler
func NewUIHandler(store *stores.UIStore, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *UIHandler {
	return &UIHandler{base: newBase(errs, logger), store: store}
}

// UpdateUIRequest sets any subset of the UI state. contextMenu set to null
// closes the menu; omitted leaves it alone.
type UpdateUIRequest struct {
	Theme             *string         `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	JourneyListView   *string         `json:"journeyListView,omitempty" validate:"omitempty,oneof=grid list"`
	ShowMinimap       *bool           `json:"showMinimap,omitempty"`
	SidebarOpen       *bool           `json:"sidebarOpen,omitempty"`
	NodeSidebarOpen   *bool           `json:"nodeSidebarOpen,omitempty"`
	EditorSidebarOpen *bool           `json:"editorSidebarOpen,omitempty"`
	ContextMenu       json.RawMessage `json:"contextMenu,omitempty"`
}

// GetUI handles GET /ui
func (h *UIHandler) GetUI(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, h.store.State())
}

// ToggleTheme handles POST /ui/theme/toggle
func (h *UIHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.store.ToggleTheme()
	h.ok(w, r, h.store.State())
}

// UpdateUI handles PUT /ui
func (h *UIHandler) UpdateUI(w http.ResponseWriter, r *http.Request) {
	var req UpdateUIRequest
	if !h.decode(w, r, &req) {
		return
	}

	var menu *aggregates.ContextMenu
	if req.ContextMenu != nil {
		if err := json.Unmarshal(req.ContextMenu, &menu); err != nil {
			h.fail(w, r, pkgerrors.NewValidationError("invalid contextMenu").WithCause(err))
			return
		}
	}

	if req.Theme != nil {
		h.store.SetTheme(aggregates.Theme(*req.Theme))
	}
	if req.JourneyListView != nil {
		h.store.SetJourneyListView(aggregates.ListView(*req.JourneyListView))
	}

	state := h.store.State()
	if req.ShowMinimap != nil && *req.ShowMinimap != state.ShowMinimap {
		h.store.ToggleMinimap()
	}
	if req.SidebarOpen != nil && *req.SidebarOpen != state.SidebarOpen {
		h.store.ToggleSidebar()
	}
	if req.NodeSidebarOpen != nil && *req.NodeSidebarOpen != state.NodeSidebarOpen {
		h.store.ToggleNodeSidebar()
	}
	if req.EditorSidebarOpen != nil {
		h.store.SetEditorSidebarOpen(*req.EditorSidebarOpen)
	}
	if req.ContextMenu != nil {
		h.store.SetContextMenu(menu)
	}

	h.ok(w, r, h.store.State())
}
