package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/agrismart/internal/api"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat, account and catalog API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config == nil || app.Registry == nil {
				return fmt.Errorf("serve is not configured")
			}
			if addr == "" {
				addr = app.Config.HTTPAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			return serveHTTP(ctx, app, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from AGRISMART_HTTP_ADDR)")
	return cmd
}

// serveHTTP serves the API on ln until ctx is done, then shuts down
// gracefully. Idle chat sessions are swept for the server's lifetime.
func serveHTTP(ctx context.Context, app *App, ln net.Listener) error {
	logger := app.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	h := api.NewHandler(app.Accounts, app.Chat, app.Catalog, app.Config.DefaultLanguage, logger)
	srv := &http.Server{
		Handler:      api.NewRouter(h, app.Config.CORSOrigins),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	app.Registry.StartSweeper(ctx, app.Config.SessionTTL, sweepInterval, logger)
	logger.Info("session sweeper started", "session_ttl", app.Config.SessionTTL)

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
