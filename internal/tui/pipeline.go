package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

// renderPipeline draws one row per pipeline stage in backend order: display
// label, live status, queue depth, and the flow to the next stage.
func (m Model) renderPipeline(width, height int) string {
	if len(m.store.AgentOrder) == 0 {
		if !m.store.Connected {
			return centered(width, height, "Waiting for backend...")
		}
		return centered(width, height, "No pipeline stages reported.")
	}

	var lines []string
	lines = append(lines, "")

	bottleneck, hasBottleneck := m.store.Bottleneck()
	if hasBottleneck {
		depth := m.store.QueueDepth(bottleneck)
		lines = append(lines, " "+bottleneckStyle.Render(
			fmt.Sprintf("Bottleneck: %s (%d queued)", models.Display(bottleneck).Label, depth)),
			"")
	}

	for i, name := range m.store.AgentOrder {
		meta := models.Display(name)
		status := m.store.AgentStatus[name]
		depth := m.store.QueueDepth(name)

		marker := "  "
		if i == m.agentCursor {
			marker = "▸ "
		}

		accent := lipgloss.NewStyle().Foreground(lipgloss.Color(meta.Color))
		label := accent.Bold(true).Render(fmt.Sprintf("%-16s", meta.Label))

		statusText := status
		if statusText == "" {
			statusText = "idle"
		}
		statusCol := statusStyle(statusText).Render(fmt.Sprintf("%-10s", statusText))

		depthCol := hintStyle.Render("queue ")
		if depth > 0 {
			style := statusRunningStyle
			if hasBottleneck && name == bottleneck {
				style = statusFailedStyle
			}
			depthCol += style.Render(fmt.Sprintf("%d", depth))
		} else {
			depthCol += hintStyle.Render("0")
		}

		row := fmt.Sprintf(" %s%s %s  %s  %s", marker, meta.Icon, label, statusCol, depthCol)
		if i == m.agentCursor {
			row = selectedItemStyle.Width(width).Render(row)
		}
		lines = append(lines, row)

		if i < len(m.store.AgentOrder)-1 {
			lines = append(lines, hintStyle.Render("     │"))
		}
	}

	lines = append(lines, "", hintStyle.Render(" Enter opens the stage's recent history."))
	return strings.Join(lines, "\n")
}

func centered(width, height int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(colorDim).
		Render(text)
}
