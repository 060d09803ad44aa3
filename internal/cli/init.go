package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/resale/internal/config"
	"github.com/example/resale/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a resale workspace",
		Long: `Write .resale/config.json in the current directory and create the
database with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			if _, err := config.LoadConfig("."); err == nil && !force {
				return fmt.Errorf(".resale/config.json already exists (use --force to overwrite)")
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			cfg := config.Default()
			cfg.DBPath, _ = cmd.Flags().GetString("db")
			cfg.Markup, _ = cmd.Flags().GetString("markup")
			cfg.OtherCharges, _ = cmd.Flags().GetString("other-charges")
			cfg.MarkSoldMode, _ = cmd.Flags().GetString("mark-sold-mode")
			cfg.VerifyCartPrices, _ = cmd.Flags().GetBool("verify-cart-prices")
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := config.SaveConfig(".", cfg); err != nil {
				return err
			}
			fmt.Println("✓ Config written to .resale/config.json")

			path := cfg.DBPath
			if path == "" {
				var err error
				if path, err = db.DefaultPath(); err != nil {
					return err
				}
			}
			conn, err := db.Open(path)
			if err != nil {
				return err
			}
			defer conn.Close()

			fmt.Printf("✓ Database initialized at %s\n", path)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  resale agent add \"Asha Verma\" --as USR-ADMIN --role manager")
			fmt.Println("  resale listing create --as USR-7 --role seller --brand Levi's --type jacket")
			return nil
		},
	}

	defaults := config.Default()
	cmd.Flags().String("db", "", "Database path (default ~/.resale/resale.db)")
	cmd.Flags().String("markup", defaults.Markup, "Markup multiplier applied on go-live")
	cmd.Flags().String("other-charges", defaults.OtherCharges, "Default delivery charge per order")
	cmd.Flags().String("mark-sold-mode", defaults.MarkSoldMode, "transactional or best_effort")
	cmd.Flags().Bool("verify-cart-prices", false, "Reject carts whose prices differ from listing final prices")
	cmd.Flags().Bool("force", false, "Overwrite an existing config")

	return cmd
}
