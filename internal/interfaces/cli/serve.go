package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/molscreen/molscreen/internal/application/screening"
	"github.com/molscreen/molscreen/internal/infrastructure/logging"
	"github.com/molscreen/molscreen/internal/infrastructure/metrics"
	"github.com/molscreen/molscreen/internal/infrastructure/modelstore"
	httpserver "github.com/molscreen/molscreen/internal/interfaces/http"
)

// newServeCmd runs the REST API server.
func newServeCmd(e *env) *cobra.Command {
	var (
		port  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the screening REST API server",
		Long:  "Serve the screening API over HTTP.  The trained model is loaded at\nstartup when present; with --watch the artifact is hot-reloaded\nwhenever `molscreen train` rewrites it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := e.cfg.Server
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("watch") {
				e.cfg.Model.WatchReload = watch
			}

			m := metrics.New()
			store := modelstore.New(e.cfg.Model.Path, e.logger, m)
			if err := store.Load(); err != nil {
				e.logger.Warn("starting without a trained model",
					logging.String("path", e.cfg.Model.Path),
					logging.Err(err),
				)
			}
			if e.cfg.Model.WatchReload {
				if err := store.Watch(); err != nil {
					return err
				}
				defer store.Close()
			}

			service := screening.NewService(store, e.logger)
			srv := httpserver.New(cfg, httpserver.Deps{
				Service: service,
				Store:   store,
				Logger:  e.logger,
				Metrics: m,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				return srv.Shutdown(context.Background())
			}
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "hot-reload the model artifact on change")
	return cmd
}
