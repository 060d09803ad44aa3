package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/wire"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit trail",
	Long:  "View and prune audit log entries for listings, pickups, orders and agents",
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		entityType, _ := cmd.Flags().GetString("entity-type")
		entityID, _ := cmd.Flags().GetString("entity-id")
		actorID, _ := cmd.Flags().GetString("actor")
		action, _ := cmd.Flags().GetString("action")
		limit, _ := cmd.Flags().GetInt("limit")

		return wire.LogAdapter().List(context.Background(), primary.LogFilters{
			EntityType: entityType,
			EntityID:   entityID,
			ActorID:    actorID,
			Action:     action,
			Limit:      limit,
		})
	},
}

var logFailuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "Show listings a sale failed to mark sold",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		return wire.LogAdapter().Failures(context.Background(), all)
	},
}

var logPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		return wire.LogAdapter().Prune(context.Background(), days)
	},
}

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	logListCmd.Flags().String("entity-type", "", "Filter by entity type (listing, pickup_request, order, delivery_agent)")
	logListCmd.Flags().String("entity-id", "", "Filter by entity ID")
	logListCmd.Flags().String("actor", "", "Filter by actor ID")
	logListCmd.Flags().String("action", "", "Filter by action (create, update, mark_sold_failed)")
	logListCmd.Flags().IntP("limit", "n", 50, "Number of entries to show")

	logFailuresCmd.Flags().Bool("all", false, "Include failures already resolved")

	logPruneCmd.Flags().Int("days", 30, "Delete entries older than N days")

	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logFailuresCmd)
	logCmd.AddCommand(logPruneCmd)

	return logCmd
}
