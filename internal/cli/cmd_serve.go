package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaultpass/vaultpass-cli/internal/handler"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(deps *commandDeps) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := deps.load()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = app.cfg.APIAddr
			}
			if app.cfg.APISecret == "" {
				slog.Warn("VAULTPASS_API_SECRET is not set, record and settings routes are disabled")
			}

			srv := &http.Server{
				Addr: addr,
				Handler: handler.NewRouter(handler.Services{
					Generator: app.generator,
					Passwords: app.passwords,
					Settings:  app.settings,
				}, app.cfg.APISecret),
				ReadHeaderTimeout: 5 * time.Second,
			}

			return runServer(cmd.Context(), srv, func() error { return app.settings.Flush() })
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default VAULTPASS_API_ADDR or 127.0.0.1:8089)")
	return cmd
}

// runServer serves until ctx is cancelled, then shuts down gracefully and
// calls onStop.
func runServer(ctx context.Context, srv *http.Server, onStop func() error) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return &ExitError{Code: ExitCodeGeneric, Err: err}
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		return &ExitError{Code: ExitCodeGeneric, Err: err}
	}
	if err := onStop(); err != nil {
		return mapCommandError(err)
	}

	slog.Info("server stopped")
	return nil
}
