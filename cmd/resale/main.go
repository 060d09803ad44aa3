package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/resale/internal/cli"
	"github.com/example/resale/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "resale",
		Short:   "Consignment resale marketplace",
		Version: version.String(),
		Long: `resale runs the consignment workflow: sellers list items, delivery agents
inspect them, managers price and publish them, and customers order them.`,
		SilenceUsage: true,
	}
	cli.AddIdentityFlags(rootCmd)

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SeedCmd())

	// Marketplace entities
	rootCmd.AddCommand(cli.ListingCmd())
	rootCmd.AddCommand(cli.PickupCmd())
	rootCmd.AddCommand(cli.OrderCmd())
	rootCmd.AddCommand(cli.AgentCmd())
	rootCmd.AddCommand(cli.LogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
