package aggregates

import "journeybuilder/domain/core/valueobjects"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type ListView string

const (
	ListViewGrid ListView = "grid"
	ListViewList ListView = "list"
)

// ContextMenu is an open right-click menu, optionally bound to a node
type ContextMenu struct {
	X      float64             `json:"x"`
	Y      float64             `json:"y"`
	NodeID valueobjects.NodeID `json:"nodeId,omitempty"`
}

// UIPreferences is the persisted part of the editor chrome state
type UIPreferences struct {
	Theme           Theme    `json:"theme"`
	JourneyListView ListView `json:"journeyListView"`
	ShowMinimap     bool     `json:"showMinimap"`
}

// UIState is the full editor chrome state
type UIState struct {
	UIPreferences
	SidebarOpen       bool         `json:"sidebarOpen"`
	NodeSidebarOpen   bool         `json:"nodeSidebarOpen"`
	EditorSidebarOpen bool         `json:"editorSidebarOpen"`
	ContextMenu       *ContextMenu `json:"contextMenu"`
}

// DefaultUIState is the state of a fresh editor
func DefaultUIState() UIState {
	return UIState{
		UIPreferences: UIPreferences{
			Theme:           ThemeLight,
			JourneyListView: ListViewGrid,
			ShowMinimap:     true,
		},
		SidebarOpen:     true,
		NodeSidebarOpen: true,
	}
}
