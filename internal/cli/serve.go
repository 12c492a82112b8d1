package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/registry"
)

// serveCommand creates the serve command running a local dev registry.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		dir  string
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a directory of component descriptors as a registry",
		Long: `Serve a directory of component descriptors as a registry.

Loads every *.json descriptor from --dir and exposes the registry HTTP API
(/registry/components, /registry/components/{id}, /registry/search). Useful
for developing components locally before publishing them:

  loom serve --dir ./registry &
  loom add button --registry http://localhost:8399`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := registry.NewServerFromDir(dir)
			if err != nil {
				return err
			}

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errc := make(chan error, 1)
			go func() { errc <- httpSrv.ListenAndServe() }()

			printSuccess("Serving %d components from %s", srv.Count(), dir)
			printDetail("http://localhost%s/registry/components", addr)
			c.Logger.Infof("Listening on %s", addr)

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpSrv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory of component descriptor JSON files")
	cmd.Flags().StringVar(&addr, "addr", ":8399", "listen address")

	return cmd
}
