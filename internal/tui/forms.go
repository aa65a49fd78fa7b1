package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

// IngestForm is the new-event overlay: a single prompt textarea whose
// contents become the requirement fed into the pipeline.
type IngestForm struct {
	promptArea textarea.Model
	width      int
}

// NewIngestForm creates an ingest form sized to the overlay width.
func NewIngestForm(width int) *IngestForm {
	pa := textarea.New()
	pa.Placeholder = "Describe the feature or change to run through the pipeline"
	pa.SetWidth(width - 8)
	pa.SetHeight(5)
	pa.Focus()

	return &IngestForm{promptArea: pa, width: width}
}

// Prompt returns the trimmed prompt text.
func (f *IngestForm) Prompt() string {
	return strings.TrimSpace(f.promptArea.Value())
}

// Update forwards a key press to the textarea.
func (f *IngestForm) Update(msg tea.KeyMsg) {
	f.promptArea, _ = f.promptArea.Update(msg)
}

// View renders the ingest form.
func (f *IngestForm) View() string {
	parts := []string{
		overlayTitleStyle.Render("New Pipeline Event"),
		lipgloss.NewStyle().Bold(true).Render("Prompt:"),
		f.promptArea.View(),
		"",
		hintStyle.Render("Ctrl+s submit  |  Esc cancel"),
	}
	return overlayStyle.Width(f.width).Render(strings.Join(parts, "\n"))
}

// RepoForm is the add-repository overlay on the settings tab.
type RepoForm struct {
	nameInput   textinput.Model
	urlInput    textinput.Model
	branchInput textinput.Model

	focusIndex int // 0=name, 1=url, 2=branch
	width      int
}

// NewRepoForm creates a repo form sized to the overlay width.
func NewRepoForm(width int) *RepoForm {
	ni := textinput.New()
	ni.Placeholder = "repo name"
	ni.CharLimit = 100
	ni.Width = width - 8

	ui := textinput.New()
	ui.Placeholder = "https://github.com/org/repo.git"
	ui.CharLimit = 300
	ui.Width = width - 8

	bi := textinput.New()
	bi.Placeholder = "main"
	bi.CharLimit = 100
	bi.Width = width - 8

	rf := &RepoForm{nameInput: ni, urlInput: ui, branchInput: bi, width: width}
	rf.nameInput.Focus()
	return rf
}

// FocusNext moves to the next field.
func (rf *RepoForm) FocusNext() {
	rf.nameInput.Blur()
	rf.urlInput.Blur()
	rf.branchInput.Blur()
	rf.focusIndex = (rf.focusIndex + 1) % 3
	switch rf.focusIndex {
	case 0:
		rf.nameInput.Focus()
	case 1:
		rf.urlInput.Focus()
	case 2:
		rf.branchInput.Focus()
	}
}

// UpdateFocused forwards a key press to the focused field.
func (rf *RepoForm) UpdateFocused(msg tea.KeyMsg) {
	switch rf.focusIndex {
	case 0:
		rf.nameInput, _ = rf.nameInput.Update(msg)
	case 1:
		rf.urlInput, _ = rf.urlInput.Update(msg)
	case 2:
		rf.branchInput, _ = rf.branchInput.Update(msg)
	}
}

// Repo returns the entered repository. ok is false when the required
// name or url field is still empty.
func (rf *RepoForm) Repo() (models.Repo, bool) {
	repo := models.Repo{
		Name:   strings.TrimSpace(rf.nameInput.Value()),
		URL:    strings.TrimSpace(rf.urlInput.Value()),
		Branch: strings.TrimSpace(rf.branchInput.Value()),
	}
	if repo.Name == "" || repo.URL == "" {
		return models.Repo{}, false
	}
	if repo.Branch == "" {
		repo.Branch = "main"
	}
	return repo, true
}

// View renders the repo form.
func (rf *RepoForm) View() string {
	label := lipgloss.NewStyle().Bold(true)
	parts := []string{
		overlayTitleStyle.Render("Add Repository"),
		label.Render("Name:"),
		rf.nameInput.View(),
		"",
		label.Render("URL:"),
		rf.urlInput.View(),
		"",
		label.Render("Branch:"),
		rf.branchInput.View(),
		"",
		hintStyle.Render("Ctrl+s save  |  Tab next field  |  Esc cancel"),
	}
	return overlayStyle.Width(rf.width).Render(strings.Join(parts, "\n"))
}
