package stores

import (
	"context"
	"sync"

	"journeybuilder/domain/core/aggregates"
)

// UIStore holds editor chrome state. Only theme, list view and minimap
// visibility are persisted.
type UIStore struct {
	mu      sync.RWMutex
	state   aggregates.UIState
	persist *Persister
}

// NewUIStore creates a store with default preferences
func NewUIStore(deps Dependencies) *UIStore {
	return &UIStore{state: aggregates.DefaultUIState(), persist: deps.Persister}
}

// Restore loads persisted preferences over the defaults
func (s *UIStore) Restore(ctx context.Context) error {
	prefs := aggregates.DefaultUIState().UIPreferences
	found, err := s.persist.Load(ctx, UISlot, &prefs)
	if err != nil || !found {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.UIPreferences = prefs
	return nil
}

// State returns a copy of the full UI state
func (s *UIStore) State() aggregates.UIState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	if s.state.ContextMenu != nil {
		menu := *s.state.ContextMenu
		out.ContextMenu = &menu
	}
	return out
}

// ToggleTheme switches between light and dark
func (s *UIStore) ToggleTheme() {
	s.updatePrefs(func(p *aggregates.UIPreferences) {
		if p.Theme == aggregates.ThemeLight {
			p.Theme = aggregates.ThemeDark
		} else {
			p.Theme = aggregates.ThemeLight
		}
	})
}

// SetTheme sets the persisted theme
func (s *UIStore) SetTheme(theme aggregates.Theme) {
	s.updatePrefs(func(p *aggregates.UIPreferences) { p.Theme = theme })
}

// SetJourneyListView sets the persisted journey list layout
func (s *UIStore) SetJourneyListView(view aggregates.ListView) {
	s.updatePrefs(func(p *aggregates.UIPreferences) { p.JourneyListView = view })
}

// ToggleMinimap flips the persisted minimap flag
func (s *UIStore) ToggleMinimap() {
	s.updatePrefs(func(p *aggregates.UIPreferences) { p.ShowMinimap = !p.ShowMinimap })
}

// ToggleSidebar flips the main sidebar
func (s *UIStore) ToggleSidebar() {
	s.update(func(st *aggregates.UIState) { st.SidebarOpen = !st.SidebarOpen })
}

// ToggleNodeSidebar flips the node palette
func (s *UIStore) ToggleNodeSidebar() {
	s.update(func(st *aggregates.UIState) { st.NodeSidebarOpen = !st.NodeSidebarOpen })
}

// ToggleEditorSidebar flips the node editor panel
func (s *UIStore) ToggleEditorSidebar() {
	s.update(func(st *aggregates.UIState) { st.EditorSidebarOpen = !st.EditorSidebarOpen })
}

// SetEditorSidebarOpen opens or closes the node editor panel
func (s *UIStore) SetEditorSidebarOpen(open bool) {
	s.update(func(st *aggregates.UIState) { st.EditorSidebarOpen = open })
}

// SetContextMenu opens a menu, or closes it when menu is nil
func (s *UIStore) SetContextMenu(menu *aggregates.ContextMenu) {
	s.update(func(st *aggregates.UIState) {
		if menu == nil {
			st.ContextMenu = nil
			return
		}
		m := *menu
		st.ContextMenu = &m
	})
}

func (s *UIStore) update(fn func(*aggregates.UIState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

func (s *UIStore) updatePrefs(fn func(*aggregates.UIPreferences)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state.UIPreferences)
	s.persist.Save(UISlot, s.state.UIPreferences)
}
