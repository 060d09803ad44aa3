package cli

import (
	"context"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/resale/internal/adapters/cli"
	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/wire"
)

var listingCmd = &cobra.Command{
	Use:   "listing",
	Short: "Manage listings (consigned items)",
	Long:  "Create, price, publish and move listings through their lifecycle",
}

var listingCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a draft listing",
	Example: `  resale listing create --as USR-7 --role seller --brand "Levi's" --type jacket \
    --checklist '{"clean":true,"working":true}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, caller, err := callerContext(cmd)
		if err != nil {
			return err
		}

		createArgs := cliadapter.CreateListingArgs{}
		createArgs.SellerID, _ = cmd.Flags().GetString("seller")
		createArgs.Brand, _ = cmd.Flags().GetString("brand")
		createArgs.ProductType, _ = cmd.Flags().GetString("type")
		createArgs.Condition, _ = cmd.Flags().GetString("condition")
		createArgs.Description, _ = cmd.Flags().GetString("description")
		createArgs.Checklist, _ = cmd.Flags().GetString("checklist")

		_, err = wire.ListingAdapter().Create(ctx, caller, createArgs)
		return err
	},
}

var listingShowCmd = &cobra.Command{
	Use:   "show [listing-id]",
	Short: "Show listing details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		_, err := wire.ListingAdapter().Show(context.Background(), args[0], asJSON)
		return err
	},
}

var listingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		seller, _ := cmd.Flags().GetString("seller")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		_, err := wire.ListingAdapter().List(context.Background(), primary.ListingFilters{
			SellerID: seller,
			Status:   status,
			Limit:    limit,
		}, asJSON)
		return err
	},
}

var listingPriceCmd = &cobra.Command{
	Use:   "price [listing-id]",
	Short: "Set the algorithm price range (manager)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, caller, err := callerContext(cmd)
		if err != nil {
			return err
		}
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		return wire.ListingAdapter().SetPrice(ctx, caller, args[0], start, end)
	},
}

var listingLiveCmd = &cobra.Command{
	Use:   "live [listing-id]",
	Short: "Publish a picked up or redesigned listing (manager)",
	Long: `Publish a listing. Without --price the final price is base_price times
the configured markup, rounded half-up to two places.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, caller, err := callerContext(cmd)
		if err != nil {
			return err
		}
		price, _ := cmd.Flags().GetString("price")
		return wire.ListingAdapter().GoLive(ctx, caller, args[0], price)
	},
}

// transitionCmd builds a shortcut for a fixed target status.
func transitionCmd(use, short, target string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [listing-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, caller, err := callerContext(cmd)
			if err != nil {
				return err
			}
			return wire.ListingAdapter().Transition(ctx, caller, args[0], target)
		},
	}
}

var listingTransitionCmd = &cobra.Command{
	Use:   "transition [listing-id] [status]",
	Short: "Move a listing along one manual edge of its lifecycle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, caller, err := callerContext(cmd)
		if err != nil {
			return err
		}
		return wire.ListingAdapter().Transition(ctx, caller, args[0], args[1])
	},
}

// ListingCmd returns the listing command
func ListingCmd() *cobra.Command {
	listingCreateCmd.Flags().String("seller", "", "Seller ID (admin only; defaults to the caller)")
	listingCreateCmd.Flags().String("brand", "", "Brand")
	listingCreateCmd.Flags().String("type", "", "Product type")
	listingCreateCmd.Flags().String("condition", "", "Seller's condition description")
	listingCreateCmd.Flags().StringP("description", "d", "", "Description")
	listingCreateCmd.Flags().String("checklist", "{}", "Seller claims as a JSON object of name -> bool")
	listingCreateCmd.MarkFlagRequired("brand")
	listingCreateCmd.MarkFlagRequired("type")

	listingShowCmd.Flags().Bool("json", false, "Output as JSON")

	listingListCmd.Flags().String("seller", "", "Filter by seller")
	listingListCmd.Flags().StringP("status", "s", "", "Filter by status")
	listingListCmd.Flags().IntP("limit", "n", 0, "Maximum listings to show")
	listingListCmd.Flags().Bool("json", false, "Output as JSON")

	listingPriceCmd.Flags().String("start", "", "Low end of the range")
	listingPriceCmd.Flags().String("end", "", "High end of the range")
	listingPriceCmd.MarkFlagRequired("start")
	listingPriceCmd.MarkFlagRequired("end")

	listingLiveCmd.Flags().String("price", "", "Explicit final price")

	listingCmd.AddCommand(listingCreateCmd)
	listingCmd.AddCommand(listingShowCmd)
	listingCmd.AddCommand(listingListCmd)
	listingCmd.AddCommand(listingPriceCmd)
	listingCmd.AddCommand(listingLiveCmd)
	listingCmd.AddCommand(transitionCmd("redesign", "Send a picked up listing to redesign (manager)", "redesigning"))
	listingCmd.AddCommand(transitionCmd("redesigned", "Mark redesign finished (manager)", "redesigned"))
	listingCmd.AddCommand(listingTransitionCmd)

	return listingCmd
}
