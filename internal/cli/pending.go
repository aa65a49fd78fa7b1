package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List and act on pending human-in-the-loop items",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ctx, cancel, err := backendClient()
		if err != nil {
			return err
		}
		defer cancel()

		items, err := c.Pending(ctx)
		if err != nil {
			return fmt.Errorf("fetch pending: %w", err)
		}

		if len(items) == 0 {
			fmt.Println(styleHint.Render("Nothing is waiting for input."))
			return nil
		}

		for _, item := range items {
			fmt.Printf("%s  %s  %s\n",
				badgeForKind(item.Kind),
				styleValue.Render(item.ID),
				styleLabel.Render(item.CreatedAt))
			switch {
			case item.Clarification != nil:
				fmt.Printf("    %s\n", item.Clarification.Question)
			case item.Approval != nil:
				fmt.Printf("    %s (%s)\n", item.Approval.Title, item.Approval.CurrentState)
				if len(item.Approval.PendingApprovals) > 0 {
					fmt.Printf("    %s %s\n",
						styleLabel.Render("awaiting:"),
						strings.Join(item.Approval.PendingApprovals, ", "))
				}
			case item.Debug != nil:
				fmt.Printf("    %s [%s]\n", item.Debug.Title, item.Debug.Agent)
			}
		}

		fmt.Println()
		fmt.Println(styleHint.Render("stagewatch pending respond <id> <text> | approve <id> | debug <id>"))
		return nil
	},
}

var pendingRespondCmd = &cobra.Command{
	Use:   "respond <id> <text>",
	Short: "Answer a clarification request",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ctx, cancel, err := backendClient()
		if err != nil {
			return err
		}
		defer cancel()

		id := args[0]
		text := strings.Join(args[1:], " ")
		if err := c.Respond(ctx, id, text, nil); err != nil {
			return fmt.Errorf("respond to %s: %w", id, err)
		}
		fmt.Println(styleSuccess.Render("Response sent."))
		return nil
	},
}

var pendingApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ctx, cancel, err := backendClient()
		if err != nil {
			return err
		}
		defer cancel()

		if err := c.Approve(ctx, args[0]); err != nil {
			return fmt.Errorf("approve %s: %w", args[0], err)
		}
		fmt.Println(styleSuccess.Render("Approved."))
		return nil
	},
}

var pendingDebugCmd = &cobra.Command{
	Use:   "debug <id>",
	Short: "Release a debug-mode step gate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ctx, cancel, err := backendClient()
		if err != nil {
			return err
		}
		defer cancel()

		if err := c.DebugApprove(ctx, args[0]); err != nil {
			return fmt.Errorf("debug-approve %s: %w", args[0], err)
		}
		fmt.Println(styleSuccess.Render("Step released."))
		return nil
	},
}

func badgeForKind(kind models.PendingKind) string {
	switch kind {
	case models.PendingClarification:
		return badgeClarification.Render("[?]")
	case models.PendingApproval:
		return badgeApproval.Render("[!]")
	case models.PendingDebug:
		return badgeDebug.Render("[▶]")
	default:
		return styleHint.Render("[" + string(kind) + "]")
	}
}

func init() {
	pendingCmd.AddCommand(pendingRespondCmd)
	pendingCmd.AddCommand(pendingApproveCmd)
	pendingCmd.AddCommand(pendingDebugCmd)
}
