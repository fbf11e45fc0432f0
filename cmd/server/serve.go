package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"inkwell/internal/db"
	"inkwell/internal/router"
	"inkwell/internal/session"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			conn, err := db.Open(cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			if cfg.Database.AutoMigrate {
				if err := db.AutoMigrate(conn); err != nil {
					return fmt.Errorf("auto migrate: %w", err)
				}
				log.Info("Database schema up to date")
			}
			if cfg.Database.Seed {
				if err := db.Seed(cmd.Context(), conn, log); err != nil {
					return err
				}
			}

			sessions := session.NewManager(
				cfg.Session.Secret,
				time.Duration(cfg.Session.TTLDays)*24*time.Hour,
				cfg.IsProduction(),
			)

			srv := &http.Server{
				Addr: fmt.Sprintf(":%d", cfg.HTTP.Port),
				Handler: router.New(router.Deps{
					Config:   cfg,
					Log:      log,
					DB:       conn,
					Sessions: sessions,
				}),
				ReadTimeout:  cfg.HTTP.ReadTimeout,
				WriteTimeout: cfg.HTTP.WriteTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.WithField("addr", srv.Addr).Info("Inkwell server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
