package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/transcription-service/internal/config"
	"github.com/kubev2v/transcription-service/internal/store"
	"github.com/kubev2v/transcription-service/pkg/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		cleanup := setupLogger(cfg)
		defer cleanup()

		zap.S().Info("Starting db migration")
		defer zap.S().Info("Db migrated")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := migrations.MigrateStore(db, cfg); err != nil {
			zap.S().Fatalw("running migrations", "error", err)
		}

		return nil
	},
}
