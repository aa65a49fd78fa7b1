package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

// renderStatsTab draws the per-agent metric table followed by recent
// improvement suggestions.
func (m Model) renderStatsTab(width, height int) string {
	if len(m.store.Metrics) == 0 {
		return centered(width, height, "No metrics yet.")
	}

	var lines []string
	lines = append(lines, "")
	lines = append(lines, " "+sectionHeaderStyle.Render(
		fmt.Sprintf("%-16s %7s %8s %7s %9s %10s", "Agent", "Total", "Success", "Failed", "Rate", "Avg ms")))

	for _, name := range m.metricOrder() {
		metric := m.store.Metrics[name]
		rate := fmt.Sprintf("%.1f%%", metric.SuccessRate)
		rateStyled := statusSuccessStyle.Render(fmt.Sprintf("%9s", rate))
		if metric.SuccessRate < 50 {
			rateStyled = statusFailedStyle.Render(fmt.Sprintf("%9s", rate))
		} else if metric.SuccessRate < 90 {
			rateStyled = statusCancelledStyle.Render(fmt.Sprintf("%9s", rate))
		}
		lines = append(lines, fmt.Sprintf(" %-16s %7d %8d %7d %s %10.0f",
			models.Display(name).Label,
			metric.Total, metric.Success, metric.Failed,
			rateStyled, metric.AvgDurationMs))
	}

	if len(m.store.Improvements) > 0 {
		lines = append(lines, "", " "+sectionHeaderStyle.Render("Improvement suggestions"), "")
		for _, imp := range m.store.Improvements {
			line := fmt.Sprintf(" %s %s %s",
				hintStyle.Render(imp.CreatedAt),
				sectionHeaderStyle.Render(fmt.Sprintf("%-12s", models.Display(imp.Agent).Label)),
				imp.Suggestion,
			)
			lines = append(lines, ansi.Truncate(line, width, "…"))
		}
	}

	if m.statsScroll > 0 && m.statsScroll < len(lines) {
		lines = lines[m.statsScroll:]
	}
	return strings.Join(lines, "\n")
}

// metricOrder prefers pipeline order, appending any metric-only agents
// alphabetically after it.
func (m Model) metricOrder() []string {
	seen := map[string]bool{}
	var order []string
	for _, name := range m.store.AgentOrder {
		if _, ok := m.store.Metrics[name]; ok {
			order = append(order, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range m.store.Metrics {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
