package main

import (
	"github.com/justsurfingit/job-search-assistant/internal/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		db, err := database.Connect(cfg.DatabaseURL, log)
		if err != nil {
			log.Error("connecting to database", zap.Error(err))
			return err
		}
		if err := database.Migrate(db, log); err != nil {
			log.Error("migrating database", zap.Error(err))
			return err
		}

		log.Info("migrations complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
