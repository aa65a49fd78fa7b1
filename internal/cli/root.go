// Package cli implements the stagewatch CLI commands.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stagewatch-io/stagewatch/internal/client"
	"github.com/stagewatch-io/stagewatch/internal/config"
	"github.com/stagewatch-io/stagewatch/internal/models"
	"github.com/stagewatch-io/stagewatch/internal/tui"
)

var backendFlag string

var rootCmd = &cobra.Command{
	Use:   "stagewatch",
	Short: "Dashboard for the agent pipeline backend",
	Long: `Stagewatch is a terminal dashboard for a multi-stage agent pipeline.
It polls the backend for pipeline status, logs, metrics and pending
human-in-the-loop items, and lets you respond without leaving the terminal.

Run without arguments to open the dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettingsWithOverride()
		if err != nil {
			return err
		}
		return tui.Run(settings)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "backend base URL (overrides settings)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettingsWithOverride loads the settings file and applies the
// --backend flag on top.
func loadSettingsWithOverride() (*models.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if backendFlag != "" {
		settings.Backend.BaseURL = backendFlag
	}
	return settings, nil
}

// backendClient builds a client from settings plus a request context for
// one-shot CLI calls.
func backendClient() (*client.Client, context.Context, context.CancelFunc, error) {
	settings, err := loadSettingsWithOverride()
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	return client.New(settings.Backend.BaseURL), ctx, cancel, nil
}
