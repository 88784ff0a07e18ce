package main

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

	"github.com/goliatone/go-compositor"
	"github.com/goliatone/go-compositor/pkg/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve table views and forms over HTTP",
		Long: `Starts an HTTP server exposing every defined table:

  GET  /tables/{table}        table view
  GET  /tables/{table}/form   form, ?row=<id> to edit a stored row
  POST /tables/{table}/form   normalised submission as JSON
  GET  /metrics               Prometheus metrics

Append ?format=html|page|json to pick the renderer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger(cmd)
			if err != nil {
				return err
			}
			store, err := opts.store(cmd.Context())
			if err != nil {
				return err
			}
			generateOptions, err := opts.generateOptions(logger)
			if err != nil {
				return err
			}
			registry, err := compositor.NewRegistry()
			if err != nil {
				return err
			}

			srv, err := server.New(store,
				server.WithRegistry(registry),
				server.WithDefaultRenderer(format),
				server.WithLogger(logger),
				server.WithGenerateOptions(generateOptions...),
			)
			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("serving tables", "addr", httpServer.Addr, "tables", store.Names())
				serverErrors <- httpServer.ListenAndServe()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(shutdown)

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)

			case sig := <-shutdown:
				logger.Info("shutting down", "signal", sig.String())

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
					if err := httpServer.Close(); err != nil {
						return fmt.Errorf("close server: %w", err)
					}
				}
				logger.Info("server stopped")
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	cmd.Flags().StringVarP(&format, "format", "f", "page", "Default renderer when a request has no format parameter")
	return cmd
}
