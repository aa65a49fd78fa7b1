package config

import (
	"github.com/stagewatch-io/stagewatch/internal/models"
)

// LoadSettings loads the dashboard settings from ~/.stagewatch/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := SettingsFile()
	if err != nil {
		return nil, err
	}
	s, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	applySettingsDefaults(s)
	return s, nil
}

// SaveSettings saves the dashboard settings to ~/.stagewatch/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}
	path, err := SettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// applySettingsDefaults fills zero-valued fields from the defaults, so a
// hand-edited partial settings file still yields a usable configuration.
func applySettingsDefaults(s *models.Settings) {
	def := models.NewSettings()
	if s.Backend.BaseURL == "" {
		s.Backend.BaseURL = def.Backend.BaseURL
	}
	if s.Backend.PollIntervalMs <= 0 {
		s.Backend.PollIntervalMs = def.Backend.PollIntervalMs
	}
	if s.Backend.TaskLimit <= 0 {
		s.Backend.TaskLimit = def.Backend.TaskLimit
	}
	if s.Backend.HistoryLimit <= 0 {
		s.Backend.HistoryLimit = def.Backend.HistoryLimit
	}
	if s.Sheet.CollapseThreshold <= 0 {
		s.Sheet.CollapseThreshold = def.Sheet.CollapseThreshold
	}
	if s.Sheet.ExpandThreshold <= 0 {
		s.Sheet.ExpandThreshold = def.Sheet.ExpandThreshold
	}
	if s.Sheet.BackdropFade <= 0 {
		s.Sheet.BackdropFade = def.Sheet.BackdropFade
	}
	if s.Sheet.RowScale <= 0 {
		s.Sheet.RowScale = def.Sheet.RowScale
	}
	if s.Appearance.Theme == "" {
		s.Appearance.Theme = def.Appearance.Theme
	}
}
