package main

import (
	"context"
	"time"

	"github.com/akeren/creatorchain/config"
	"github.com/akeren/creatorchain/internal/log"
	"github.com/akeren/creatorchain/internal/models"
	"github.com/akeren/creatorchain/pkg/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd(logger *log.Logger) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		Long: `Applies the submission audit schema. Postgres databases use the SQL
migrations (embedded unless --dir is given); SQLite databases are migrated
from the models.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCfg := config.NewDBConfigFromEnv()
			db, err := config.NewDatabase(logger, dbCfg)
			if err != nil {
				return err
			}
			defer config.CloseDatabase(db, logger)

			if dbCfg.Driver == config.DriverSQLite {
				if err := config.AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
					return err
				}
				logger.Info("Database migrations completed", "driver", dbCfg.Driver)
				return nil
			}

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			if err := migrations.Up(ctx, sqlDB, migrations.Config{Dir: dir, Logger: logger}); err != nil {
				return err
			}

			logger.Info("Database migrations completed", "driver", dbCfg.Driver)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Migrations directory (default: embedded)")
	return cmd
}
