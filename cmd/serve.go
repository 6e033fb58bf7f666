package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/twrank/internal/handlers"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Serve GET /top50, GET /health and the Swagger UI until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if cfg.LogLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := handlers.NewRouter(handlers.NewRankingHandler(a.rankingSvc))

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Infof("Starting server on port %s", cfg.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		// Wait for interrupt signal for graceful shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}
		log.Info("Shutting down server...")

		// Give outstanding requests 5 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return err
		}

		log.Info("Server exited")
		return nil
	},
}
