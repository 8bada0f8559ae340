package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/starwars-api/internal/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:                   "migrate",
		Short:                 "Apply schema migrations and exit",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.New(a.cfg, a.logger, a.loggerService)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(cmd.Context(), a.logger, a.cfg, db); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s schema up to date\n", db.Dialect())
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample users, characters and planets into empty tables",
		Long: `Insert sample users, characters and planets.
Tables that already hold rows are left untouched, so seeding twice is harmless.
The schema is migrated first.`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.New(a.cfg, a.logger, a.loggerService)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(cmd.Context(), a.logger, a.cfg, db); err != nil {
				return err
			}

			result, err := database.Seed(cmd.Context(), db)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded users=%d characters=%d planets=%d\n",
				result.Users, result.Characters, result.Planets)
			return nil
		},
	}
}
