package tui

import (
	"fmt"
	"strings"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

// renderSettingsTab draws the LLM | Services | Repos sub-tab trio.
func (m Model) renderSettingsTab(width, height int) string {
	subTabs := renderSubTabs([]string{"LLM", "Services", "Repos"}, m.setSubTab)

	var body string
	switch m.setSubTab {
	case setSubLLM:
		body = m.renderLLM(width)
	case setSubServices:
		body = m.renderServices()
	case setSubRepos:
		body = m.renderRepos(width)
	}

	return subTabs + "\n\n" + body
}

// renderLLM shows one row per agent with its effective adapter; local edits
// are marked until saved.
func (m Model) renderLLM(width int) string {
	agents := m.llmAgents()
	if len(agents) == 0 {
		return hintStyle.Render(" Loading adapter assignments...")
	}

	var lines []string
	for i, agent := range agents {
		adapter := m.currentAdapter(agent)
		if adapter == "" {
			adapter = "(default)"
		}

		label := fmt.Sprintf(" %-16s", models.Display(agent).Label)
		value := keyStyle.Render(adapter)
		if _, edited := m.llmEdits[agent]; edited {
			value += statusCancelledStyle.Render(" *")
		}

		row := label + " " + value
		if i == m.llmCursor {
			row = selectedItemStyle.Width(width).Render(row)
		}
		lines = append(lines, row)
	}

	if m.llmDirty {
		lines = append(lines, "", statusCancelledStyle.Render(" Unsaved changes — Ctrl+s to save."))
	}
	if len(m.store.Adapters) > 0 {
		var names []string
		for _, a := range m.store.Adapters {
			names = append(names, a.Name)
		}
		lines = append(lines, "", hintStyle.Render(" Adapters: "+strings.Join(names, ", ")))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderServices() string {
	backend, n8n := "unknown", "unknown"
	if m.store.System != nil {
		backend, n8n = m.store.System.Backend, m.store.System.N8N
	}

	debug := "off"
	debugStyle := statusIdleStyle
	if m.debugMode {
		debug = "on"
		debugStyle = statusCancelledStyle
	}

	return strings.Join([]string{
		fmt.Sprintf(" %-10s %s", "backend", statusStyle(backend).Render(backend)),
		fmt.Sprintf(" %-10s %s", "n8n", statusStyle(n8n).Render(n8n)),
		fmt.Sprintf(" %-10s %s", "debug", debugStyle.Render(debug)),
		"",
		hintStyle.Render(" R restart backend · s/S/r start/stop/restart n8n · d toggle debug"),
	}, "\n")
}

func (m Model) renderRepos(width int) string {
	if len(m.store.Repos) == 0 {
		return hintStyle.Render(" No repositories registered. Press a to add one.")
	}

	var lines []string
	for i, repo := range m.store.Repos {
		branch := repo.Branch
		if branch == "" {
			branch = "main"
		}
		row := fmt.Sprintf(" %-20s %s %s",
			sectionHeaderStyle.Render(repo.Name),
			repo.URL,
			hintStyle.Render("("+branch+")"),
		)
		if i == m.repoCursor {
			row = selectedItemStyle.Width(width).Render(row)
		}
		lines = append(lines, row)
	}

	return strings.Join(lines, "\n")
}
