package main

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/veo1/shop-api/models"
)

func newMigrateCommand() *cobra.Command {
	flags := commonFlags()

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := openDB(cfg, log)
			if err != nil {
				return err
			}
			defer models.Close(db)

			if err := migrate(db, log); err != nil {
				return err
			}
			log.Info("Migrations applied")
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}
