package main

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/veo1/shop-api/config"
	"github.com/veo1/shop-api/logger"
	"github.com/veo1/shop-api/models"
)

const envFileFlag = "env-file"

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "shop-api",
		Short:        "Catalog, customer and order HTTP API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newCreateDBCommand())
	return rootCmd
}

// commonFlags returns a fresh flag set shared by every subcommand.
func commonFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		envFileFlag: &cobraflags.StringFlag{
			Name:  envFileFlag,
			Value: "",
			Usage: "Path to a .env file (default \".env\" if present)",
		},
	}
}

// bootstrap loads the configuration and builds the logger.
func bootstrap(flags map[string]cobraflags.Flag) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(flags[envFileFlag].GetString())
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func openDB(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	log.Info("Connecting to Postgres...", "host", cfg.DB.Host, "database", cfg.DB.Name)
	return models.Open(cfg.DB.DSN(), models.PoolOptions{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		SlowThreshold:   cfg.DB.SlowThreshold,
	}, log.With("component", "gorm"))
}

func migrate(db *gorm.DB, log *logger.Logger) error {
	log.Info("Running migrations...")
	if err := models.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
