package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lawwatch/lawwatch/internal/api"
	"github.com/lawwatch/lawwatch/internal/clock"
)

// newServeCmd creates the 'serve' subcommand exposing the dataset over HTTP.
func newServeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the crawled dataset over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, rt)
		},
	}
}

func runServe(cmd *cobra.Command, rt *runtime) error {
	ctx := cmd.Context()
	cfg := rt.cfg
	logger := rt.logger

	server := api.NewServer(cfg.Dataset.Path, clock.System{}, cfg.Location(), logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}
