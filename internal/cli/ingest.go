package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <prompt>",
	Short: "Feed a new task into the pipeline",
	Long: `Feed a new task into the pipeline.

The prompt becomes the original requirement of a fresh event and lands
on the first stage's queue.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ctx, cancel, err := backendClient()
		if err != nil {
			return err
		}
		defer cancel()

		prompt := strings.TrimSpace(strings.Join(args, " "))
		if prompt == "" {
			return fmt.Errorf("prompt must not be empty")
		}

		result, err := c.Ingest(ctx, prompt)
		if err != nil {
			return fmt.Errorf("ingest: %w", err)
		}

		fmt.Printf("%s %s\n", styleSuccess.Render("Queued"), styleValue.Render(result.EventID))
		fmt.Printf("  %s %s\n", styleLabel.Render("queue:"), result.Queue)
		return nil
	},
}
