package cli

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/versionforge/internal/api"
	"github.com/matzehuels/versionforge/pkg/cache"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [manifest]",
		Short: "Serve the engine over HTTP",
		Long: `Serve starts the HTTP API. With a manifest the server starts from its
components, compatibility pairs and migrations; without one it starts empty.

On start the matrix stored in the configured cache under matrix.key is
merged in, and every pair registered over HTTP is saved back under that key.
Use "versionforge matrix import" to seed the stored matrix before serving.`,
		Example: `  versionforge serve ecosystem.yaml
  versionforge serve --addr 127.0.0.1:9000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			api.NewMetrics(reg).Install()

			srv, backend, err := c.newServer(ctx, args, reg)
			if err != nil {
				return err
			}
			defer backend.Close()

			printInfo("Listening on %s", addr)
			err = srv.ListenAndServe(ctx, addr, c.Config.Server.ReadTimeout.Duration, c.Config.Server.WriteTimeout.Duration)
			if errors.Is(err, context.Canceled) {
				printSuccess("Server stopped")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// newServer builds the API server from an optional manifest and merges the
// stored matrix into it. The caller closes the returned cache.
func (c *CLI) newServer(ctx context.Context, args []string, reg *prometheus.Registry) (*api.Server, cache.Cache, error) {
	store, backend, err := c.matrixStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	opts := []api.Option{
		api.WithLogger(c.Logger),
		api.WithGatherer(reg),
		api.WithStore(store, c.Config.Matrix.Key),
	}

	var srv *api.Server
	if len(args) == 1 {
		eco, err := c.loadEcosystem(ctx, args[0])
		if err != nil {
			backend.Close()
			return nil, nil, err
		}
		srv = api.New(eco.validator, eco.matrix, eco.guides, opts...)
		printStats(len(eco.manifest.Components), eco.validator.Graph().EdgeCount(), len(eco.manifest.Compatibility))
	} else {
		srv = api.New(nil, nil, nil, opts...)
	}

	found, err := srv.Restore(ctx)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	if found {
		printInfo("Restored stored matrix %q", c.Config.Matrix.Key)
	}
	return srv, backend, nil
}
