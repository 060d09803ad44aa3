package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/resale/internal/db"
	"github.com/example/resale/internal/wire"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load development fixtures",
		Long:  "Insert delivery agents, one listing per status, pickup requests and a delivered order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Resolves the configured database path before GetDB.
			wire.Config()

			conn, err := db.GetDB()
			if err != nil {
				return err
			}
			if err := db.SeedFixtures(conn); err != nil {
				return fmt.Errorf("failed to seed: %w", err)
			}

			fmt.Println("✓ Seeded fixtures (agents AGT-001..003, listings LST-SEED-0001..0007)")
			return nil
		},
	}
}
