package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/veo1/shop-api/app"
	"github.com/veo1/shop-api/models"
)

const addrFlag = "addr"

func newServeCommand() *cobra.Command {
	flags := commonFlags()
	flags[addrFlag] = &cobraflags.StringFlag{
		Name:  addrFlag,
		Value: "",
		Usage: "Listen address, overrides HTTP_ADDR",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), flags)
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func serve(ctx context.Context, flags map[string]cobraflags.Flag) error {
	cfg, log, err := bootstrap(flags)
	if err != nil {
		return err
	}
	defer log.Sync()

	if addr := flags[addrFlag].GetString(); addr != "" {
		cfg.HTTPAddr = addr
	}

	db, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := models.Close(db); err != nil {
			log.Warn("close database", "error", err)
		}
	}()

	if cfg.AutoMigrate {
		if err := migrate(db, log); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           app.NewRouter(db, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}
