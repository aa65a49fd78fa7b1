package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}

	def := models.NewSettings()
	if s.Backend.BaseURL != def.Backend.BaseURL {
		t.Errorf("BaseURL = %q, want default %q", s.Backend.BaseURL, def.Backend.BaseURL)
	}
	if s.Backend.PollIntervalMs != def.Backend.PollIntervalMs {
		t.Errorf("PollIntervalMs = %d, want default %d", s.Backend.PollIntervalMs, def.Backend.PollIntervalMs)
	}
	if s.Sheet.RowScale != def.Sheet.RowScale {
		t.Errorf("RowScale = %d, want default %d", s.Sheet.RowScale, def.Sheet.RowScale)
	}
}

func TestSaveAndLoadSettingsRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s := models.NewSettings()
	s.Backend.BaseURL = "http://pipeline.internal:9000"
	s.Backend.PollIntervalMs = 2500
	s.Sheet.CollapseThreshold = 200
	s.Appearance.Theme = "dark"

	if err := SaveSettings(s); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	loaded, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if loaded.Backend.BaseURL != "http://pipeline.internal:9000" {
		t.Errorf("BaseURL = %q after round trip", loaded.Backend.BaseURL)
	}
	if loaded.Backend.PollIntervalMs != 2500 {
		t.Errorf("PollIntervalMs = %d after round trip", loaded.Backend.PollIntervalMs)
	}
	if loaded.Sheet.CollapseThreshold != 200 {
		t.Errorf("CollapseThreshold = %d after round trip", loaded.Sheet.CollapseThreshold)
	}
	if loaded.Appearance.Theme != "dark" {
		t.Errorf("Theme = %q after round trip", loaded.Appearance.Theme)
	}
}

func TestLoadSettingsFillsPartialFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, GlobalDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	partial := "backend:\n  base_url: http://only-this:8000\n"
	if err := os.WriteFile(filepath.Join(dir, SettingsFileName), []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.Backend.BaseURL != "http://only-this:8000" {
		t.Errorf("BaseURL = %q, want value from file", s.Backend.BaseURL)
	}

	def := models.NewSettings()
	if s.Backend.PollIntervalMs != def.Backend.PollIntervalMs {
		t.Errorf("PollIntervalMs = %d, want default backfill %d", s.Backend.PollIntervalMs, def.Backend.PollIntervalMs)
	}
	if s.Sheet.ExpandThreshold != def.Sheet.ExpandThreshold {
		t.Errorf("ExpandThreshold = %d, want default backfill %d", s.Sheet.ExpandThreshold, def.Sheet.ExpandThreshold)
	}
}
