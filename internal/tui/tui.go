// Package tui implements the interactive dashboard for stagewatch.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stagewatch-io/stagewatch/internal/client"
	"github.com/stagewatch-io/stagewatch/internal/config"
	"github.com/stagewatch-io/stagewatch/internal/diag"
	"github.com/stagewatch-io/stagewatch/internal/models"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run launches the dashboard against the configured backend.
func Run(settings *models.Settings) error {
	diag.Open()

	ref := &programRef{}
	c := client.New(settings.Backend.BaseURL)
	model := NewModel(c, settings, ref)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	// Store program reference for goroutine sends
	ref.Set(p)

	// Live settings reload: the watcher goroutine feeds the running program.
	stop, err := config.WatchSettings(func() {
		reloaded, loadErr := config.LoadSettings()
		if loadErr != nil {
			diag.Logf("config", "reload settings: %v", loadErr)
			return
		}
		ref.Send(SettingsReloadedMsg{Settings: reloaded})
	}, func(watchErr error) {
		diag.Logf("config", "settings watch: %v", watchErr)
	})
	if err != nil {
		diag.Logf("config", "settings watch unavailable: %v", err)
	} else {
		defer stop()
	}

	_, err = p.Run()
	return err
}
