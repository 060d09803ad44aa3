package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/wire"
)

var pickupCmd = &cobra.Command{
	Use:   "pickup",
	Short: "Manage pickup requests (agent inspections)",
}

var pickupCreateCmd = &cobra.Command{
	Use:   "create [listing-id]",
	Short: "Assign a delivery agent to inspect a draft listing (manager)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, caller, err := callerContext(cmd)
		if err != nil {
			return err
		}
		agentID, _ := cmd.Flags().GetString("agent")
		_, err = wire.PickupAdapter().Create(ctx, caller, args[0], agentID)
		return err
	},
}

// inspectCmd builds accept/reject, which differ only in the decision.
func inspectCmd(decision, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   decision + " [request-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, caller, err := callerContext(cmd)
			if err != nil {
				return err
			}
			conditions, _ := cmd.Flags().GetString("conditions")
			return wire.PickupAdapter().Inspect(ctx, caller, args[0], decision, conditions)
		},
	}
	c.Flags().String("conditions", "", "Filled checklist as a JSON object of name -> bool")
	c.MarkFlagRequired("conditions")
	return c
}

var pickupShowCmd = &cobra.Command{
	Use:   "show [request-id]",
	Short: "Show pickup request details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		_, err := wire.PickupAdapter().Show(context.Background(), args[0], asJSON)
		return err
	},
}

var pickupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pickup requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		agent, _ := cmd.Flags().GetString("agent")
		listing, _ := cmd.Flags().GetString("listing")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		_, err := wire.PickupAdapter().List(context.Background(), primary.PickupFilters{
			AgentID:   agent,
			ListingID: listing,
			Status:    status,
			Limit:     limit,
		}, asJSON)
		return err
	},
}

// PickupCmd returns the pickup command
func PickupCmd() *cobra.Command {
	pickupCreateCmd.Flags().String("agent", "", "Delivery agent ID")
	pickupCreateCmd.MarkFlagRequired("agent")

	pickupShowCmd.Flags().Bool("json", false, "Output as JSON")

	pickupListCmd.Flags().String("agent", "", "Filter by agent")
	pickupListCmd.Flags().String("listing", "", "Filter by listing")
	pickupListCmd.Flags().StringP("status", "s", "", "Filter by status (processing, completed)")
	pickupListCmd.Flags().IntP("limit", "n", 0, "Maximum requests to show")
	pickupListCmd.Flags().Bool("json", false, "Output as JSON")

	pickupCmd.AddCommand(pickupCreateCmd)
	pickupCmd.AddCommand(inspectCmd("accept", "Accept the item after inspection (assigned agent)"))
	pickupCmd.AddCommand(inspectCmd("reject", "Reject the item after inspection (assigned agent)"))
	pickupCmd.AddCommand(pickupShowCmd)
	pickupCmd.AddCommand(pickupListCmd)

	return pickupCmd
}
