package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stagewatch-io/stagewatch/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change dashboard settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		path, _ := config.SettingsFile()
		fmt.Println(styleBrand.Render("Settings") + " " + styleHint.Render(path))
		fmt.Printf("  %s %s\n", styleLabel.Render("backend.base_url:"), styleValue.Render(settings.Backend.BaseURL))
		fmt.Printf("  %s %d\n", styleLabel.Render("backend.poll_interval_ms:"), settings.Backend.PollIntervalMs)
		fmt.Printf("  %s %d\n", styleLabel.Render("backend.task_limit:"), settings.Backend.TaskLimit)
		fmt.Printf("  %s %d\n", styleLabel.Render("backend.history_limit:"), settings.Backend.HistoryLimit)
		fmt.Printf("  %s %d\n", styleLabel.Render("sheet.collapse_threshold:"), settings.Sheet.CollapseThreshold)
		fmt.Printf("  %s %d\n", styleLabel.Render("sheet.expand_threshold:"), settings.Sheet.ExpandThreshold)
		fmt.Printf("  %s %d\n", styleLabel.Render("sheet.backdrop_fade:"), settings.Sheet.BackdropFade)
		fmt.Printf("  %s %s\n", styleLabel.Render("appearance.theme:"), settings.Appearance.Theme)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save the file.

Keys: backend.base_url, backend.poll_interval_ms, backend.task_limit,
backend.history_limit, sheet.collapse_threshold, sheet.expand_threshold,
sheet.backdrop_fade, appearance.theme`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		key, value := args[0], args[1]
		switch key {
		case "backend.base_url":
			settings.Backend.BaseURL = value
		case "appearance.theme":
			if value != "system" && value != "light" && value != "dark" {
				return fmt.Errorf("theme must be system, light or dark")
			}
			settings.Appearance.Theme = value
		case "backend.poll_interval_ms", "backend.task_limit", "backend.history_limit",
			"sheet.collapse_threshold", "sheet.expand_threshold", "sheet.backdrop_fade":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("%s expects a positive integer", key)
			}
			switch key {
			case "backend.poll_interval_ms":
				settings.Backend.PollIntervalMs = n
			case "backend.task_limit":
				settings.Backend.TaskLimit = n
			case "backend.history_limit":
				settings.Backend.HistoryLimit = n
			case "sheet.collapse_threshold":
				settings.Sheet.CollapseThreshold = n
			case "sheet.expand_threshold":
				settings.Sheet.ExpandThreshold = n
			case "sheet.backdrop_fade":
				settings.Sheet.BackdropFade = n
			}
		default:
			return fmt.Errorf("unknown setting %q", key)
		}

		if err := config.SaveSettings(settings); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		fmt.Println(styleSuccess.Render("Saved."))
		return nil
	},
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Show the backend's per-agent LLM adapters",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ctx, cancel, err := backendClient()
		if err != nil {
			return err
		}
		defer cancel()

		llm, err := c.LLMSettings(ctx)
		if err != nil {
			return fmt.Errorf("fetch llm settings: %w", err)
		}

		fmt.Println(styleBrand.Render("LLM adapters"))
		for _, agent := range sortedKeys(llm.Settings) {
			adapter := llm.Settings[agent]
			suffix := ""
			if adapter == "" {
				adapter = llm.Defaults[agent]
				suffix = styleHint.Render(" (default)")
			}
			fmt.Printf("  %-14s %s%s\n", agent, styleValue.Render(adapter), suffix)
		}
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
}
