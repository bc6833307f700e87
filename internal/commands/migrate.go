package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marvinpacsands/Project-List-Designers/config"
	"github.com/marvinpacsands/Project-List-Designers/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long:  `Applies the embedded schema migrations to the PostgreSQL store. The file store needs none.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.Store.Driver != config.StoreDriverPostgres {
			fmt.Fprintf(cmd.OutOrStdout(), "store driver is %q, nothing to migrate\n", cfg.Store.Driver)
			return nil
		}

		db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := database.RunMigrations(sqlDB, logger); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}
