package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"docstore-backend/internal/shared/server"
	"docstore-backend/internal/shared/telemetry"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the handler over HTTP for local development",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&port, "port", "", "Listen port (defaults to PORT or 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	listen := app.Config.Port
	if port != "" {
		listen = port
	}
	httpServer := &http.Server{
		Addr:              server.Addr(listen),
		Handler:           app.Router,
		ReadHeaderTimeout: 20 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	eg.Go(func() error {
		telemetry.Info("server.start", map[string]any{"addr": httpServer.Addr, "store": app.Config.ObjectStoreType})
		err := httpServer.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	err = eg.Wait()
	telemetry.Info("server.stop", map[string]any{"addr": httpServer.Addr})
	return err
}
