package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

// renderLogsTab draws the Logs | Tasks sub-tab pair.
func (m Model) renderLogsTab(width, height int) string {
	subTabs := renderSubTabs([]string{"Logs", "Tasks"}, m.logsSubTab)
	inner := height - 2
	if inner < 1 {
		inner = 1
	}

	var body string
	if m.logsSubTab == logsSubTasks {
		body = m.renderTasks(width, inner)
	} else {
		body = m.renderLogs(width, inner)
	}

	return subTabs + "\n\n" + body
}

// renderLogs shows the filter controls and the filtered window, newest first.
func (m Model) renderLogs(width, height int) string {
	filter := m.logFilter()

	search := filter.Search
	if m.searching {
		search = m.searchInput.View()
	} else if search == "" {
		search = hintStyle.Render("(none)")
	}
	controls := fmt.Sprintf(" %s %s   %s %s   %s %s",
		hintStyle.Render("search:"), search,
		hintStyle.Render("status:"), keyStyle.Render(filter.Status),
		hintStyle.Render("agent:"), keyStyle.Render(filter.Agent),
	)

	entries := m.store.FilterLogs(filter)
	listHeight := height - 2
	if listHeight < 1 {
		listHeight = 1
	}

	if len(entries) == 0 {
		return controls + "\n\n" + hintStyle.Render(" No matching log lines.")
	}

	// Newest first.
	var lines []string
	shown := 0
	for i := len(entries) - 1; i >= 0 && shown < listHeight; i-- {
		lines = append(lines, formatLogLine(entries[i], width))
		shown++
	}

	return controls + "\n\n" + strings.Join(lines, "\n")
}

func formatLogLine(entry models.LogEntry, width int) string {
	ts := entry.Timestamp
	if len(ts) >= 19 {
		ts = ts[11:19]
	}
	meta := models.Display(entry.Agent)

	line := fmt.Sprintf(" %s %s %s %s",
		hintStyle.Render(ts),
		statusStyle(string(entry.Status)).Render(fmt.Sprintf("%-9s", entry.Status)),
		sectionHeaderStyle.Render(fmt.Sprintf("%-12s", meta.Label)),
		entry.Message,
	)
	return ansi.Truncate(line, width, "…")
}

// renderTasks shows the recent run list, or one run's stage events when
// drilled in.
func (m Model) renderTasks(width, height int) string {
	if m.taskDetail != nil {
		return m.renderTaskDetail(width, height)
	}

	if !m.tasksLoaded {
		return hintStyle.Render(" Loading tasks...")
	}
	if len(m.store.Tasks) == 0 {
		return hintStyle.Render(" No pipeline runs yet.")
	}

	var lines []string
	start, end := window(len(m.store.Tasks), height-1, m.taskCursor)
	for i := start; i < end; i++ {
		t := m.store.Tasks[i]
		stage := t.CurrentStage
		if stage == "" {
			stage = "-"
		}
		row := fmt.Sprintf(" %s  %s  %s %s",
			statusStyle(t.Status).Render(fmt.Sprintf("%-10s", t.Status)),
			sectionHeaderStyle.Render(fmt.Sprintf("%-12s", models.Display(stage).Label)),
			t.Title,
			hintStyle.Render(t.UpdatedAt),
		)
		row = ansi.Truncate(row, width, "…")
		if i == m.taskCursor {
			row = selectedItemStyle.Width(width).Render(row)
		}
		lines = append(lines, row)
	}
	if end < len(m.store.Tasks) {
		lines = append(lines, hintStyle.Render("  ▼ more"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTaskDetail(width, height int) string {
	d := m.taskDetail

	var lines []string
	lines = append(lines,
		" "+sectionHeaderStyle.Render(d.Title),
		fmt.Sprintf(" %s %s   %s %s",
			hintStyle.Render("status:"), statusStyle(d.Status).Render(d.Status),
			hintStyle.Render("stage:"), models.Display(d.CurrentStage).Label),
		hintStyle.Render(" "+d.CreatedAt+" → "+d.UpdatedAt),
		hintStyle.Render(" Esc to go back"),
		"",
	)

	if len(d.Events) == 0 {
		lines = append(lines, hintStyle.Render(" No stage events recorded."))
	}
	for _, ev := range d.Events {
		if len(lines) >= height {
			break
		}
		line := fmt.Sprintf(" %s %s %s",
			hintStyle.Render(ev.Timestamp),
			sectionHeaderStyle.Render(fmt.Sprintf("%-12s", models.Display(ev.Stage).Label)),
			ev.Message,
		)
		lines = append(lines, ansi.Truncate(line, width, "…"))
		if ev.OutputSummary != "" && len(lines) < height {
			lines = append(lines, ansi.Truncate(hintStyle.Render("              "+ev.OutputSummary), width, "…"))
		}
	}

	return strings.Join(lines, "\n")
}
