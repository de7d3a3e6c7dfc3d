package tui

import (
	"vlanpath/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Loader produces the analysis shown by the TUI.
type Loader func() (model.AnalysisResult, error)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Result  model.AnalysisResult
	Loading bool
	Err     error
	load    Loader

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg

	// View Modes
	ShowDiagnostics bool
	ShowCSV         bool
	ShowHelp        bool
	OnlyNotAllowed  bool

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of Results to show
	SearchActive    bool

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state.
func InitialModel(load Loader) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Path filter..."
	ti.CharLimit = 64
	ti.Width = 24

	return AppModel{
		Loading:     true,
		load:        load,
		InputBuffer: ti,
	}
}

// Selected returns the result under the cursor.
func (m AppModel) Selected() (model.ValidationResult, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return model.ValidationResult{}, false
	}
	return m.Result.Results[m.FilteredIndices[m.SelectedIdx]], true
}
