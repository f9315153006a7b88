package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"asciigen/internal/server"
)

// serveCommand creates the serve command exposing the converter over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter as an HTTP service",
		Long: `Serve the converter as an HTTP service.

Endpoints:
  POST /convert   multipart form: "image" file, optional "width" field;
                  responds text/plain with the ASCII grid
  GET  /healthz   liveness probe

Uploads are converted in-memory; the artifact cache applies to uploads the
same way it does to local files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printInfo("Serving on %s", addr)
			return server.New(runner, c.Logger).Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the conversion cache")

	return cmd
}
