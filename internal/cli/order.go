package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/wire"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place and fulfil orders",
}

var orderPlaceCmd = &cobra.Command{
	Use:     "place [LISTING=PRICE...]",
	Short:   "Place an order for live listings",
	Example: `  resale order place --as USR-9 --role customer LST-1=40 LST-2=60 --other-charges 5`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, caller, err := callerContext(cmd)
		if err != nil {
			return err
		}
		customer, _ := cmd.Flags().GetString("customer")
		charges, _ := cmd.Flags().GetString("other-charges")
		_, err = wire.OrderAdapter().Place(ctx, caller, customer, args, charges)
		return err
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show [order-id]",
	Short: "Show order details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		_, err := wire.OrderAdapter().Show(context.Background(), args[0], asJSON)
		return err
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		customer, _ := cmd.Flags().GetString("customer")
		agent, _ := cmd.Flags().GetString("agent")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		_, err := wire.OrderAdapter().List(context.Background(), primary.OrderFilters{
			CustomerID: customer,
			AgentID:    agent,
			Status:     status,
			Limit:      limit,
		}, asJSON)
		return err
	},
}

var orderStatusCmd = &cobra.Command{
	Use:   "status [order-id] [status]",
	Short: "Move an order to delivering, delivered or cancelled",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, caller, err := callerContext(cmd)
		if err != nil {
			return err
		}
		return wire.OrderAdapter().UpdateStatus(ctx, caller, args[0], args[1])
	},
}

var orderRefundCmd = &cobra.Command{
	Use:   "refund [order-id]",
	Short: "Refund a delivered, paid order (manager)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, caller, err := callerContext(cmd)
		if err != nil {
			return err
		}
		return wire.OrderAdapter().Refund(ctx, caller, args[0])
	},
}

// OrderCmd returns the order command
func OrderCmd() *cobra.Command {
	orderPlaceCmd.Flags().String("customer", "", "Customer ID (admin only; defaults to the caller)")
	orderPlaceCmd.Flags().String("other-charges", "", "Delivery and other charges (default from config)")

	orderShowCmd.Flags().Bool("json", false, "Output as JSON")

	orderListCmd.Flags().String("customer", "", "Filter by customer")
	orderListCmd.Flags().String("agent", "", "Filter by delivery agent")
	orderListCmd.Flags().StringP("status", "s", "", "Filter by status")
	orderListCmd.Flags().IntP("limit", "n", 0, "Maximum orders to show")
	orderListCmd.Flags().Bool("json", false, "Output as JSON")

	orderCmd.AddCommand(orderPlaceCmd)
	orderCmd.AddCommand(orderShowCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderStatusCmd)
	orderCmd.AddCommand(orderRefundCmd)

	return orderCmd
}
