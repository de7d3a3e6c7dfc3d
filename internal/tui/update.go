package tui

import (
	"log/slog"
	"strings"

	"vlanpath/internal/fabric"
	"vlanpath/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgAnalysisReady indicates that the inputs have been analyzed.
type MsgAnalysisReady model.AnalysisResult

// MsgError indicates an error occurred.
type MsgError struct{ Err error }

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 4 // minus footer/header
		return m, nil

	case MsgAnalysisReady:
		m.Loading = false
		m.Result = model.AnalysisResult(msg)
		m.applyFilter()
		return m, nil

	case MsgError:
		m.Err = msg.Err
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.applyFilter()
				return m, nil
			case tea.KeyEsc:
				m.clearSearch()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			switch {
			case m.ShowHelp:
				m.ShowHelp = false
			case m.ShowCSV:
				m.ShowCSV = false
			case m.ShowDiagnostics:
				m.ShowDiagnostics = false
			case m.SearchActive:
				m.clearSearch()
			}
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
			}
		case "home", "g":
			m.SelectedIdx = 0
		case "end", "G":
			if len(m.FilteredIndices) > 0 {
				m.SelectedIdx = len(m.FilteredIndices) - 1
			}
		case "n":
			m.OnlyNotAllowed = !m.OnlyNotAllowed
			m.applyFilter()
		case "d":
			m.ShowDiagnostics = !m.ShowDiagnostics
			m.ShowCSV = false
		case "c":
			m.ShowCSV = !m.ShowCSV
			m.ShowDiagnostics = false
		case "?":
			m.ShowHelp = !m.ShowHelp
		case "/":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		}
	}

	return m, cmd
}

func (m *AppModel) clearSearch() {
	m.InputMode = false
	m.InputBuffer.Blur()
	m.InputBuffer.SetValue("")
	m.SearchActive = false
	m.applyFilter()
}

// applyFilter recomputes FilteredIndices from the search term and the
// not-allowed toggle. Matching uses the normalized path form.
func (m *AppModel) applyFilter() {
	term := fabric.NormalizePath(m.InputBuffer.Value())
	m.SearchActive = term != ""

	result := make([]int, 0, len(m.Result.Results))
	for i, res := range m.Result.Results {
		if m.OnlyNotAllowed && res.IsAllowed {
			continue
		}
		if term != "" && !strings.Contains(fabric.NormalizePath(res.Path), term) {
			continue
		}
		result = append(result, i)
	}
	m.FilteredIndices = result

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		if len(m.FilteredIndices) > 0 {
			m.SelectedIdx = len(m.FilteredIndices) - 1
		} else {
			m.SelectedIdx = 0
		}
	}
}

// LoadCmd runs the loader in the background.
func LoadCmd(load Loader) tea.Cmd {
	return func() tea.Msg {
		res, err := load()
		if err != nil {
			slog.Debug("analysis failed", "err", err)
			return MsgError{Err: err}
		}
		return MsgAnalysisReady(res)
	}
}
