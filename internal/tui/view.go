package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"vlanpath/internal/fabric"
	"vlanpath/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	allowedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green

	notAllowedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")) // Red

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	popupStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("205"))
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Analyzing endpoint and attachment output... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press q to quit.\n", m.Err)
	}

	// Subtracting 6 for horizontal margin (borders x2 + buffer)
	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 40 {
		netWidth = 40
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 4
	if boxHeight < 8 {
		boxHeight = 8
	}
	interiorHeight := boxHeight - 2

	header := m.renderHeader()
	var body string
	switch {
	case m.ShowHelp:
		body = m.renderHelpDialog()
	case m.ShowCSV:
		body = popupStyle.Width(netWidth).Render(titleStyle.Render("CSV preview") + "\n\n" + m.Result.CSV)
	case m.ShowDiagnostics:
		body = m.renderDiagnosticsPopup(netWidth)
	default:
		left := panelStyle.Width(leftWidth).Height(interiorHeight).Render(m.renderList(leftWidth-2, interiorHeight))
		right := panelStyle.Width(rightWidth).Height(interiorHeight).Render(m.renderDetails(rightWidth-2, interiorHeight))
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m AppModel) renderHeader() string {
	vlan := ""
	if m.Result.Endpoint != nil {
		vlan = m.Result.Endpoint.VLAN
	}
	notAllowed := len(m.Result.NotAllowed())
	summary := fmt.Sprintf(" VLAN %s · EPG %s · %d paths · %d not allowed ",
		vlan, m.Result.EPG, len(m.Result.Results), notAllowed)

	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4"))
	if notAllowed > 0 {
		style = style.Background(lipgloss.Color("124"))
	}
	return style.Render("vlanpath") + dimStyle.Render(summary)
}

func (m AppModel) renderList(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Endpoint Paths"))
	if m.OnlyNotAllowed {
		sb.WriteString(dimStyle.Render(" (not allowed only)"))
	}
	sb.WriteString("\n\n")

	if len(m.FilteredIndices) == 0 {
		sb.WriteString(dimStyle.Render("  No paths match."))
		return sb.String()
	}

	// Windowing: header takes 2 lines
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	start, end := 0, len(m.FilteredIndices)
	if end > visible {
		start = m.SelectedIdx - visible/2
		if start < 0 {
			start = 0
		}
		if start+visible > end {
			start = end - visible
		}
		end = start + visible
	}

	for i := start; i < end; i++ {
		idx := m.FilteredIndices[i]
		res := m.Result.Results[idx]

		icon, style := model.IconAllowed, allowedStyle
		if !res.IsAllowed {
			icon, style = model.IconNotAllowed, notAllowedStyle
			if len(fabric.AttachmentsForPath(res.Path, m.Result.Attachments)) > 0 {
				icon = model.IconOtherVLAN
			}
		}

		line := truncate(fmt.Sprintf("%2d. %s %s", idx+1, icon, res.Path), width-2)

		if i == m.SelectedIdx {
			sb.WriteString(selectedStyle.Render(line))
		} else {
			sb.WriteString(style.Render(line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// truncate shortens s to at most width terminal cells, ending in "...".
func truncate(s string, width int) string {
	if width < 4 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "...")
}

func (m AppModel) renderDetails(width, height int) string {
	res, ok := m.Selected()
	if !ok {
		return dimStyle.Render("Nothing selected.")
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Details"))
	sb.WriteString("\n\n")

	field := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString("\n  ")
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	field("Path", res.Path)
	field("Normalized", fabric.NormalizePath(res.Path))
	if res.IsAllowed {
		field("Status", allowedStyle.Render(string(res.Status)))
	} else {
		field("Status", notAllowedStyle.Render(string(res.Status)))
	}

	matches := fabric.AttachmentsForPath(res.Path, m.Result.Attachments)
	if !res.IsAllowed {
		pod := fabric.PodForPath(res.Path, m.Result.Attachments, m.Result.FallbackPod)
		podSource := "from attachment"
		if len(matches) == 0 {
			podSource = "fallback"
		}
		field("Report path", fabric.ReconstructFullPath(pod, res.Path, true))
		field("Pod", fmt.Sprintf("%s (%s)", pod, podSource))
	}

	sb.WriteString(labelStyle.Render(fmt.Sprintf("Attachments (%d)", len(matches))))
	sb.WriteString("\n")
	if len(matches) == 0 {
		sb.WriteString(dimStyle.Render("  none on any VLAN"))
		sb.WriteString("\n")
	}
	for _, a := range matches {
		full := a.FullPath
		if full == "" {
			full = "(undecodable path name)"
		}
		line := fmt.Sprintf("  VLAN %-5s %s", a.VLAN, a.EPG)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("    " + full))
		sb.WriteString("\n")
	}

	if !res.IsAllowed && len(matches) > 0 {
		sb.WriteString("\n")
		sb.WriteString(adviceStyle.Width(width).Render(
			fmt.Sprintf("Attached on another VLAN only. Add a static path on an EPG for VLAN %s.", m.Result.Endpoint.VLAN)))
	}

	m.DetailsViewport.Width = width
	m.DetailsViewport.Height = height
	m.DetailsViewport.SetContent(sb.String())
	return m.DetailsViewport.View()
}

func (m AppModel) renderFooter() string {
	if m.InputMode {
		return "Filter: " + m.InputBuffer.View()
	}
	keys := "j/k: move • n: not allowed only • /: filter • c: csv • d: diagnostics • ?: help • q: quit"
	if m.SearchActive {
		keys = fmt.Sprintf("filter %q • esc: clear • ", m.InputBuffer.Value()) + keys
	}
	return dimStyle.Render(keys)
}

func (m AppModel) renderDiagnosticsPopup(width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Diagnostics"))
	sb.WriteString("\n\n")
	if len(m.Result.Diagnostics) == 0 {
		sb.WriteString("No issues found.")
	}
	for _, d := range m.Result.Diagnostics {
		sb.WriteString(adviceStyle.Render("• " + d))
		sb.WriteString("\n")
	}
	return popupStyle.Width(width).Render(sb.String())
}

func (m AppModel) renderHelpDialog() string {
	rows := [][2]string{
		{"j / k, ↑ / ↓", "Move selection"},
		{"g / G", "First / last path"},
		{"n", "Show only not-allowed paths"},
		{"/", "Filter paths (case and brackets ignored)"},
		{"c", "Preview the CSV report"},
		{"d", "Show diagnostics"},
		{"esc", "Close popup or clear filter"},
		{"q", "Quit"},
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Keys"))
	sb.WriteString("\n\n")
	for _, r := range rows {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", r[0])))
		sb.WriteString(r[1])
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s allowed  %s not allowed  %s attached on another VLAN",
		model.IconAllowed, model.IconNotAllowed, model.IconOtherVLAN)
	return popupStyle.Render(sb.String())
}

func (m AppModel) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	return LoadCmd(m.load)
}
