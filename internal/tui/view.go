package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/stagewatch-io/stagewatch/internal/sheet"
)

// View renders the dashboard.
func (m Model) View() string {
	// Minimum size check
	if m.width < 80 || m.height < 24 {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					"Need 80x24, have "+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()

	bodyHeight := m.height - lipgloss.Height(header) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch m.tab {
	case tabPipeline:
		body = m.renderPipeline(m.width, bodyHeight)
	case tabLogs:
		body = m.renderLogsTab(m.width, bodyHeight)
	case tabPending:
		body = m.renderPendingTab(m.width, bodyHeight)
	case tabStats:
		body = m.renderStatsTab(m.width, bodyHeight)
	case tabSettings:
		body = m.renderSettingsTab(m.width, bodyHeight)
	}
	body = fitContent(body, m.width, bodyHeight)

	view := lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)

	// Bottom sheet sits over the body, above the status bar.
	if m.sheet.State() != sheet.Closed {
		view = m.composeSheet(view)
	}

	// Centered overlays dim whatever is underneath, sheet included.
	if m.activeOverlay != overlayNone {
		var content string
		switch m.activeOverlay {
		case overlayHelp:
			content = renderHelp(m.width)
		case overlayIngest:
			if m.ingestForm != nil {
				content = m.ingestForm.View()
			}
		}
		if content != "" {
			view = renderOverlay(view, content, m.width, m.height)
		}
	}

	if m.repoForm != nil {
		view = renderOverlay(view, m.repoForm.View(), m.width, m.height)
	}

	return view
}

// renderHeader draws the tab bar with the bottleneck and clarification
// badges on the right.
func (m Model) renderHeader() string {
	var left string
	{
		tabs := make([]string, len(tabNames))
		for i := range tabNames {
			label := m.tabLabel(i)
			if i == m.tab {
				tabs[i] = activeTabStyle.Render(label)
			} else {
				tabs[i] = inactiveTabStyle.Render(label)
			}
		}
		left = " " + joinTabs(tabs)
	}

	var badges []string
	if agent, ok := m.store.Bottleneck(); ok {
		badges = append(badges, bottleneckStyle.Render("⏳ "+agent))
	}
	if n := m.store.ClarificationCount(); n > 0 {
		badges = append(badges, clarificationBadgeStyle.Render(fmt.Sprintf("? %d", n)))
	}
	right := ""
	for i, b := range badges {
		if i > 0 {
			right += "  "
		}
		right += b
	}
	right += " "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Width(m.width).Render(left + spaces(gap) + right)
}

// tabLabel is the display label for a tab; Pending carries its item count.
func (m Model) tabLabel(i int) string {
	if i == tabPending && len(m.store.Pending) > 0 {
		return fmt.Sprintf("%s (%d)", tabNames[i], len(m.store.Pending))
	}
	return tabNames[i]
}

func joinTabs(tabs []string) string {
	out := ""
	for i, t := range tabs {
		if i > 0 {
			out += tabSepStyle.Render(" | ")
		}
		out += t
	}
	return out
}

// renderSubTabs draws a secondary tab row.
func renderSubTabs(names []string, active int) string {
	tabs := make([]string, len(names))
	for i, name := range names {
		if i == active {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	return " " + joinTabs(tabs)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
