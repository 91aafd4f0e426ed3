package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"pizza-deprizza/config"
	"pizza-deprizza/handlers"
	"pizza-deprizza/models"
	"pizza-deprizza/repository"
	"pizza-deprizza/routes"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the order API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	gin.SetMode(a.cfg.GinMode)

	db, err := config.OpenDB(a.cfg.DSN)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() {
			if err := sqlDB.Close(); err != nil {
				a.log.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	menu := repository.NewMenuRepository(db)
	if err := menu.Seed(ctx, models.DefaultMenu()); err != nil {
		return err
	}
	h := handlers.New(repository.NewOrderRepository(db), menu, a.log)

	server := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      routes.NewRouter(h, a.log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.log.Info("Starting HTTP server", "address", server.Addr, "dsn", a.cfg.DSN)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info("Server stopped")
	return nil
}
