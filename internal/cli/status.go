package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline status",
	Long:  `Show backend health, per-stage status and queue depths without opening the dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ctx, cancel, err := backendClient()
		if err != nil {
			return err
		}
		defer cancel()

		system, err := c.SystemStatus(ctx)
		if err != nil {
			return fmt.Errorf("backend unreachable at %s: %w", c.BaseURL(), err)
		}

		fmt.Println(styleBrand.Render("Stagewatch"))
		fmt.Printf("  %s %s\n", styleLabel.Render("backend:"), renderServiceState(system.Backend))
		fmt.Printf("  %s %s\n", styleLabel.Render("n8n:"), renderServiceState(system.N8N))

		agents, err := c.Agents(ctx)
		if err != nil {
			return fmt.Errorf("fetch agents: %w", err)
		}
		statuses, err := c.AgentStatuses(ctx)
		if err != nil {
			return fmt.Errorf("fetch agent statuses: %w", err)
		}
		queues, err := c.Queues(ctx)
		if err != nil {
			return fmt.Errorf("fetch queues: %w", err)
		}

		fmt.Println()
		fmt.Println(styleLabel.Render("  Stage          Status     Queued"))
		for _, name := range agents.Order {
			meta := models.Display(name)
			status := statuses[name]
			if status == "" {
				status = "idle"
			}
			depth := queues[models.QueuePrefix+name].Count
			fmt.Printf("  %-14s %s %6d\n",
				meta.Label,
				renderAgentStatus(status),
				depth)
		}

		pending, err := c.Pending(ctx)
		if err != nil {
			return fmt.Errorf("fetch pending: %w", err)
		}
		if len(pending) > 0 {
			fmt.Println()
			fmt.Printf("  %s\n", styleWarning.Render(fmt.Sprintf("%d item(s) awaiting input — run `stagewatch pending`", len(pending))))
		}

		return nil
	},
}

func renderServiceState(state string) string {
	switch state {
	case "running", "ok", "healthy":
		return styleSuccess.Render(state)
	case "stopped", "down":
		return styleError.Render(state)
	default:
		return styleValue.Render(state)
	}
}

func renderAgentStatus(status string) string {
	padded := fmt.Sprintf("%-10s", status)
	switch status {
	case "success":
		return styleSuccess.Render(padded)
	case "failed":
		return styleError.Render(padded)
	case "running":
		return styleUpdate.Render(padded)
	default:
		return styleHint.Render(padded)
	}
}

// sortedKeys is used by commands printing map-shaped responses.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
