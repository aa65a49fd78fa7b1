package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/stagewatch-io/stagewatch/internal/models"
	"github.com/stagewatch-io/stagewatch/internal/sheet"
)

// sheetTopRow computes the first terminal row the sheet occupies, shifted
// by the live drag offset scaled back into rows.
func (m Model) sheetTopRow() int {
	var visible int
	switch m.sheet.State() {
	case sheet.OpenExpanded:
		visible = m.height - 3
	default:
		visible = (m.height * 2) / 5
	}
	if visible < 5 {
		visible = 5
	}

	top := m.height - 1 - visible // status bar keeps the last row
	top += m.sheet.DragY() / m.rowScale()
	if top < 1 {
		top = 1
	}
	if top > m.height-2 {
		top = m.height - 2
	}
	return top
}

// composeSheet paints the bottom sheet over the base view. The backdrop
// dims with the configured fade: a drag far enough toward dismissal lets
// the underlying tab show through.
func (m Model) composeSheet(base string) string {
	lines := strings.Split(base, "\n")
	top := m.sheetTopRow()

	// Backdrop above the sheet.
	if m.sheet.BackdropOpacity() >= 0.5 {
		for i := 1; i < top && i < len(lines)-1; i++ {
			lines[i] = backdropFaintStyle.Render(ansi.Strip(lines[i]))
		}
	}

	innerWidth := m.width - 2
	if innerWidth < 10 {
		innerWidth = 10
	}
	innerHeight := m.height - 1 - top - 2 // borders
	if innerHeight < 1 {
		innerHeight = 1
	}

	content := fitContent(m.renderSheetContent(innerWidth, innerHeight), innerWidth, innerHeight)
	box := sheetBorderStyle.Width(innerWidth).Render(content)

	for i, boxLine := range strings.Split(box, "\n") {
		row := top + i
		if row >= len(lines)-1 {
			break
		}
		lines[row] = boxLine
	}

	return strings.Join(lines, "\n")
}

// renderSheetContent draws the selected agent's history, or one entry's
// detail when drilled in.
func (m Model) renderSheetContent(width, height int) string {
	meta := models.Display(m.selectedAgent)
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(meta.Color)).Bold(true)

	handle := sheetHandleStyle.Render(strings.Repeat("─", 8))
	gap := (width - 8) / 2
	header := spaces(gap) + handle + "\n" +
		fmt.Sprintf(" %s %s  %s", meta.Icon, accent.Render(meta.Label),
			hintStyle.Render(m.sheet.State().String()))

	if m.historyDetail != nil {
		return header + "\n\n" + m.renderHistoryDetail(width)
	}

	listHeight := height - 3
	if listHeight < 1 {
		listHeight = 1
	}

	if len(m.store.History) == 0 {
		return header + "\n\n" + hintStyle.Render(" No recent events for this stage.")
	}

	var rows []string
	start, end := window(len(m.store.History), listHeight, m.historyCursor)
	for i := start; i < end; i++ {
		entry := m.store.History[i]
		row := fmt.Sprintf(" %s %s %s %s",
			hintStyle.Render(entry.Timestamp),
			statusStyle(entry.Status).Render(fmt.Sprintf("%-9s", entry.Status)),
			entry.Message,
			hintStyle.Render(fmt.Sprintf("%.0fms", entry.DurationMs)),
		)
		row = ansi.Truncate(row, width-1, "…")
		if i == m.historyCursor {
			row = selectedItemStyle.Width(width - 1).Render(row)
		}
		rows = append(rows, row)
	}
	if end < len(m.store.History) {
		rows = append(rows, hintStyle.Render("  ▼ more"))
	}

	return header + "\n\n" + strings.Join(rows, "\n")
}

func (m Model) renderHistoryDetail(width int) string {
	entry := m.historyDetail

	var lines []string
	lines = append(lines,
		" "+sectionHeaderStyle.Render("Event "+entry.EventID),
		fmt.Sprintf(" %s %s   %s %s   %s %.0fms",
			hintStyle.Render("status:"), statusStyle(entry.Status).Render(entry.Status),
			hintStyle.Render("at:"), entry.Timestamp,
			hintStyle.Render("took:"), entry.DurationMs),
		"",
	)
	if entry.Message != "" {
		lines = append(lines, wrapIndent(entry.Message, width-2, " ")...)
	}
	if entry.Output != "" {
		lines = append(lines, "", hintStyle.Render(" Output:"))
		lines = append(lines, wrapIndent(entry.Output, width-2, " ")...)
	}
	lines = append(lines, "", hintStyle.Render(" Esc to go back"))

	return strings.Join(lines, "\n")
}
