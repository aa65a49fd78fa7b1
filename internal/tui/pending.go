package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

// renderPendingTab lists the human-in-the-loop items; the selected item's
// detail (and the respond editor for clarifications) renders below the list.
func (m Model) renderPendingTab(width, height int) string {
	if len(m.store.Pending) == 0 {
		return centered(width, height, "Nothing is waiting on you.")
	}

	listHeight := len(m.store.Pending)
	maxList := height / 3
	if maxList < 3 {
		maxList = 3
	}
	if listHeight > maxList {
		listHeight = maxList
	}

	var lines []string
	lines = append(lines, "")
	start, end := window(len(m.store.Pending), listHeight, m.pendingCursor)
	for i := start; i < end; i++ {
		row := formatPendingRow(m.store.Pending[i], width)
		if i == m.pendingCursor {
			row = selectedItemStyle.Width(width).Render(row)
		}
		lines = append(lines, row)
	}
	if end < len(m.store.Pending) {
		lines = append(lines, hintStyle.Render("  ▼ more"))
	}

	lines = append(lines, "", hintStyle.Render(" "+strings.Repeat("─", max(width-2, 1))), "")

	if item := m.selectedPendingView(); item != nil {
		lines = append(lines, m.renderPendingDetail(*item, width)...)
	}

	return strings.Join(lines, "\n")
}

func (m Model) selectedPendingView() *models.PendingItem {
	if m.pendingCursor < 0 || m.pendingCursor >= len(m.store.Pending) {
		return nil
	}
	return &m.store.Pending[m.pendingCursor]
}

func formatPendingRow(item models.PendingItem, width int) string {
	var kind, summary string
	switch item.Kind {
	case models.PendingClarification:
		kind = clarificationBadgeStyle.Render("[?] clarification")
		if item.Clarification != nil {
			summary = item.Clarification.Question
		}
	case models.PendingApproval:
		kind = statusRunningStyle.Render("[!] approval")
		if item.Approval != nil {
			summary = item.Approval.Title
		}
	case models.PendingDebug:
		kind = statusCancelledStyle.Render("[▶] debug gate")
		if item.Debug != nil {
			summary = item.Debug.Title
		}
	default:
		kind = hintStyle.Render("[" + string(item.Kind) + "]")
	}

	row := fmt.Sprintf("  %s  %s %s", kind, summary, hintStyle.Render(item.CreatedAt))
	return ansi.Truncate(row, width, "…")
}

func (m Model) renderPendingDetail(item models.PendingItem, width int) []string {
	var lines []string

	switch item.Kind {
	case models.PendingClarification:
		c := item.Clarification
		if c == nil {
			break
		}
		lines = append(lines, " "+sectionHeaderStyle.Render("Question"))
		lines = append(lines, wrapIndent(c.Question, width-2, " ")...)
		if c.OriginalPrompt != "" {
			lines = append(lines, "", hintStyle.Render(" Original prompt:"))
			lines = append(lines, wrapIndent(c.OriginalPrompt, width-2, " ")...)
		}
		lines = append(lines, "")
		lines = append(lines, m.renderRespondEditor(item.ID, width)...)

	case models.PendingApproval:
		a := item.Approval
		if a == nil {
			break
		}
		lines = append(lines,
			" "+sectionHeaderStyle.Render(a.Title),
			fmt.Sprintf(" %s %s", hintStyle.Render("state:"), a.CurrentState),
		)
		if len(a.PendingApprovals) > 0 {
			lines = append(lines, fmt.Sprintf(" %s %s",
				hintStyle.Render("awaiting:"), strings.Join(a.PendingApprovals, ", ")))
		}
		if a.Message != "" {
			lines = append(lines, "")
			lines = append(lines, wrapIndent(a.Message, width-2, " ")...)
		}
		lines = append(lines, "", hintStyle.Render(" Press a to approve."))

	case models.PendingDebug:
		d := item.Debug
		if d == nil {
			break
		}
		lines = append(lines,
			" "+sectionHeaderStyle.Render(d.Title),
			fmt.Sprintf(" %s %s", hintStyle.Render("agent:"), models.Display(d.Agent).Label),
		)
		if d.Message != "" {
			lines = append(lines, wrapIndent(d.Message, width-2, " ")...)
		}
		lines = append(lines, "", hintStyle.Render(" Press d to release this step."))

	default:
		lines = append(lines, hintStyle.Render(" Unknown item type: "+string(item.Kind)))
	}

	return lines
}

// renderRespondEditor shows the draft editor plus the staged image list.
func (m Model) renderRespondEditor(itemID string, width int) []string {
	var lines []string

	if m.responding && m.respondItemID == itemID {
		lines = append(lines, m.respondArea.View())
	} else if m.store.HasDraft(itemID) {
		draft := m.store.Draft(itemID)
		preview := draft.Text
		if preview == "" {
			preview = hintStyle.Render("(empty draft)")
		}
		lines = append(lines, fmt.Sprintf(" %s %s", hintStyle.Render("draft:"),
			ansi.Truncate(preview, width-10, "…")))
		lines = append(lines, hintStyle.Render(" Press r to edit."))
	} else {
		lines = append(lines, hintStyle.Render(" Press r to respond."))
	}

	if m.store.HasDraft(itemID) {
		draft := m.store.Draft(itemID)
		for _, img := range draft.Images {
			lines = append(lines, fmt.Sprintf(" %s %s",
				statusSuccessStyle.Render("📎"), hintStyle.Render(img.Path)))
		}
	}

	if m.attachingImg && m.respondItemID == itemID {
		lines = append(lines, "", " "+m.imageInput.View())
	}

	return lines
}

// wrapIndent hard-wraps text to the given width with a leading prefix.
func wrapIndent(text string, width int, prefix string) []string {
	if width < 10 {
		width = 10
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := prefix
		for _, w := range words {
			if len(line)+len(w)+1 > width && line != prefix {
				lines = append(lines, line)
				line = prefix
			}
			if line == prefix {
				line += w
			} else {
				line += " " + w
			}
		}
		lines = append(lines, line)
	}
	return lines
}
