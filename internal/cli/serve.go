package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/vnav/pkg/observability"
	"github.com/matzehuels/vnav/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		legacy  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram API over HTTP",
		Long: `Serve the diagram API over HTTP until interrupted.

Routes:
  POST /v1/parse     parse and repair a diagram
  POST /v1/validate  validate one drawing
  POST /v1/resolve   resolve an end point against a set of drawings
  GET  /healthz      liveness and version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			s, err := c.settings()
			if err != nil {
				return err
			}
			if addr != "" {
				s.Server.Addr = addr
			}
			runner, err := c.newRunner(ctx, s, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			observability.SetHTTPHooks(observability.NewLogHooks(logger))

			opts := pipelineOptions(s, legacy, false)
			opts.Source = "api"
			srv := server.New(server.Config{
				Addr:    s.Server.Addr,
				Runner:  runner,
				Options: opts,
				Logger:  logger,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings or VNAV_SERVER_ADDR)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parse cache")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "only remove PathLines with missing or self-referencing anchors")
	return cmd
}
