package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stagewatch-io/stagewatch/internal/sheet"
)

func (m Model) renderStatusBar() string {
	if m.notice != "" {
		style := statusBarStyle
		if m.noticeErr {
			style = statusBarStyle.Background(colorRed)
		}
		return style.Width(m.width).Render(" " + m.notice)
	}

	left := " " + m.keyHints()

	var right string
	if m.store.Connected {
		right = lipgloss.NewStyle().Foreground(colorGreen).Render("● Connected") + " "
	} else {
		right = lipgloss.NewStyle().Foreground(colorYellow).Bold(true).Render("⚠ Disconnected") + " "
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// keyHints builds the context-sensitive hint line.
func (m Model) keyHints() string {
	if m.activeOverlay == overlayIngest || m.repoForm != nil {
		return keyHint("Ctrl+s", "submit") + "  " + keyHint("Esc", "cancel")
	}
	if m.activeOverlay == overlayHelp {
		return keyHint("Esc", "close")
	}
	if m.responding {
		return keyHint("Ctrl+s", "send") + "  " + keyHint("Ctrl+a", "attach") + "  " +
			keyHint("Ctrl+x", "remove image") + "  " + keyHint("Esc", "keep draft")
	}
	if m.searching {
		return keyHint("Enter", "apply") + "  " + keyHint("Esc", "clear")
	}
	if m.attachingImg {
		return keyHint("Enter", "stage") + "  " + keyHint("Esc", "cancel")
	}

	base := keyHint("1-5", "tabs") + "  " + keyHint("Ctrl+n", "new task") + "  " +
		keyHint("Ctrl+h", "help") + "  " + keyHint("Ctrl+q", "quit")

	if m.sheet.State() != sheet.Closed {
		return keyHint("j/k", "history") + "  " + keyHint("Enter", "detail") + "  " +
			keyHint("K/J", "expand/collapse") + "  " + keyHint("Esc", "close")
	}

	switch m.tab {
	case tabPipeline:
		return base + "  " + keyHint("j/k", "agents") + "  " + keyHint("Enter", "history")
	case tabLogs:
		if m.logsSubTab == logsSubTasks {
			return base + "  " + keyHint("Tab", "sub-tab") + "  " + keyHint("Enter", "detail")
		}
		return base + "  " + keyHint("Tab", "sub-tab") + "  " + keyHint("/", "search") + "  " +
			keyHint("s", "status") + "  " + keyHint("a", "agent")
	case tabPending:
		return base + "  " + keyHint("r", "respond") + "  " + keyHint("a", "approve") + "  " +
			keyHint("d", "release gate")
	case tabStats:
		return base + "  " + keyHint("j/k", "scroll")
	case tabSettings:
		switch m.setSubTab {
		case setSubLLM:
			return base + "  " + keyHint("h/l", "adapter") + "  " + keyHint("Ctrl+s", "save")
		case setSubServices:
			return base + "  " + keyHint("R", "restart backend") + "  " +
				keyHint("s/S/r", "n8n start/stop/restart") + "  " + keyHint("d", "debug mode")
		case setSubRepos:
			return base + "  " + keyHint("a", "add") + "  " + keyHint("x", "delete")
		}
	}
	return base
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}
