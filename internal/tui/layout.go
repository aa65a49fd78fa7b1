package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// fitContent pads/clips content to exactly width x height so the composed
// view keeps a stable shape regardless of what a tab renders.
func fitContent(content string, width, height int) string {
	lines := strings.Split(content, "\n")

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	// Truncate long lines (ANSI-aware)
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}

	return strings.Join(lines, "\n")
}

// window returns the [start, end) slice of a list that keeps the cursor
// visible within height rows. Derived from the cursor each render, no
// persistent scroll state.
func window(total, height, cursor int) (start, end int) {
	if height <= 0 {
		return 0, 0
	}
	if cursor >= height {
		start = cursor - height + 1
	}
	end = start + height
	if end > total {
		end = total
	}
	return start, end
}
