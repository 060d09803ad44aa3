package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/resale/internal/wire"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage the delivery-agent directory",
}

var agentAddCmd = &cobra.Command{
	Use:   "add [display-name]",
	Short: "Register a delivery agent (manager)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, caller, err := callerContext(cmd)
		if err != nil {
			return err
		}
		_, err = wire.AgentAdapter().Add(ctx, caller, strings.Join(args, " "))
		return err
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List delivery agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		_, err := wire.AgentAdapter().List(context.Background(), asJSON)
		return err
	},
}

// AgentCmd returns the agent command
func AgentCmd() *cobra.Command {
	agentListCmd.Flags().Bool("json", false, "Output as JSON")

	agentCmd.AddCommand(agentAddCmd)
	agentCmd.AddCommand(agentListCmd)

	return agentCmd
}
