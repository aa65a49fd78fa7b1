package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []helpKey
}

type helpKey struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Global",
		keys: []helpKey{
			{"Ctrl+q", "Quit"},
			{"Ctrl+h", "Toggle help"},
			{"Ctrl+n", "Ingest a new event"},
			{"1-5", "Switch tab"},
		},
	},
	{
		title: "Pipeline",
		keys: []helpKey{
			{"j/k ↑/↓", "Navigate stages"},
			{"Enter", "Open stage history sheet"},
		},
	},
	{
		title: "History Sheet",
		keys: []helpKey{
			{"j/k ↑/↓", "Navigate entries"},
			{"Enter", "Entry detail"},
			{"K / PgUp", "Expand sheet"},
			{"J / PgDn", "Collapse sheet"},
			{"Esc / q", "Close (or back from detail)"},
			{"(drag)", "Drag sheet with the mouse"},
		},
	},
	{
		title: "Logs & Tasks",
		keys: []helpKey{
			{"Tab / [ ]", "Switch sub-tab"},
			{"/", "Search logs"},
			{"s", "Cycle status filter"},
			{"a", "Cycle agent filter"},
			{"Enter", "Task detail"},
		},
	},
	{
		title: "Pending",
		keys: []helpKey{
			{"j/k ↑/↓", "Navigate items"},
			{"r / Enter", "Respond to clarification"},
			{"a", "Approve"},
			{"d", "Debug approve"},
			{"Ctrl+a", "Attach image to response"},
			{"Ctrl+x", "Remove last image"},
			{"Ctrl+s", "Submit response"},
		},
	},
	{
		title: "Settings",
		keys: []helpKey{
			{"←/→ h/l", "Cycle adapter"},
			{"Ctrl+s", "Save LLM changes"},
			{"a / x", "Add / delete repo"},
			{"s/S/r", "Start / stop / restart n8n"},
			{"R", "Restart backend"},
			{"d", "Toggle debug mode"},
		},
	},
	{
		title: "Overlays",
		keys: []helpKey{
			{"Ctrl+s", "Save / submit"},
			{"Esc", "Cancel / close"},
			{"Tab", "Next field"},
		},
	},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := 60
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	title := overlayTitleStyle.Render("Keyboard Shortcuts")
	sections := make([]string, 0, len(helpSections)*4+3)
	sections = append(sections, title)

	for _, sec := range helpSections {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(sec.title)
		sections = append(sections, "", header)

		for _, k := range sec.keys {
			keyCol := lipgloss.NewStyle().
				Width(14).
				Foreground(colorWhite).
				Bold(true).
				Render(k.key)
			descCol := lipgloss.NewStyle().
				Foreground(colorDim).
				Render(k.desc)
			sections = append(sections, "  "+keyCol+descCol)
		}
	}

	sections = append(sections, "", lipgloss.NewStyle().Foreground(colorDim).Render("Press Esc or Ctrl+h to close"))

	content := strings.Join(sections, "\n")
	return overlayStyle.Width(maxWidth).Render(content)
}
