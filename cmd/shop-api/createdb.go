package main

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/veo1/shop-api/models"
)

func newCreateDBCommand() *cobra.Command {
	flags := commonFlags()

	cmd := &cobra.Command{
		Use:   "createdb",
		Short: "Create the configured database if missing, then migrate it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			created, err := models.EnsureDatabase(cmd.Context(), cfg.DB.MaintenanceDSN(), cfg.DB.Name)
			if err != nil {
				return fmt.Errorf("create database %s: %w", cfg.DB.Name, err)
			}
			if created {
				log.Info("Database created", "database", cfg.DB.Name)
			} else {
				log.Info("Database already exists", "database", cfg.DB.Name)
			}

			db, err := openDB(cfg, log)
			if err != nil {
				return err
			}
			defer models.Close(db)

			return migrate(db, log)
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}
