package models

// BackendConfig holds the remote backend connection settings.
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
	TaskLimit      int    `yaml:"task_limit"`
	HistoryLimit   int    `yaml:"history_limit"`
}

// SheetConfig holds the drag-gesture tuning for the bottom sheet. The
// thresholds are expressed in gesture units inherited from the original UI
// (one terminal row maps to RowScale units).
type SheetConfig struct {
	CollapseThreshold int `yaml:"collapse_threshold"`
	ExpandThreshold   int `yaml:"expand_threshold"`
	BackdropFade      int `yaml:"backdrop_fade"`
	RowScale          int `yaml:"row_scale"`
}

// AppearanceConfig holds appearance settings.
type AppearanceConfig struct {
	Theme string `yaml:"theme"` // "system" | "light" | "dark"
}

// Settings represents the dashboard's own configuration.
// This corresponds to ~/.stagewatch/settings.yaml.
type Settings struct {
	Version    int              `yaml:"version"`
	Backend    BackendConfig    `yaml:"backend"`
	Sheet      SheetConfig      `yaml:"sheet"`
	Appearance AppearanceConfig `yaml:"appearance"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8000",
			PollIntervalMs: 1000,
			TaskLimit:      50,
			HistoryLimit:   20,
		},
		Sheet: SheetConfig{
			CollapseThreshold: 150,
			ExpandThreshold:   100,
			BackdropFade:      500,
			RowScale:          25,
		},
		Appearance: AppearanceConfig{
			Theme: "system",
		},
	}
}
