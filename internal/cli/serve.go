package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/internal/server"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// serveCommand creates the command serving a session over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags renderFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve DOC1 DOC2",
		Short: "Compare two documents in the browser",
		Long: `Serve loads both documents and serves a page showing the word cloud with one
button per action. Every action changes the session for all viewers.

Endpoints:
  GET  /                  the page
  GET  /cloud.svg         current cloud as SVG
  GET  /cloud.json        current layout as JSON
  POST /actions/{action}  apply an action (common, infrequent, unshared)
  GET  /stats             session statistics`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.pipelineOptions(cmd, &flags, args[0], args[1])
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}

			s, err := c.loadSession(ctx, args[0], args[1], opts.SessionOptions(), false)
			if err != nil {
				return err
			}
			logger := loggerFromContext(ctx)
			runner := pipeline.NewRunner(cache.NewMemoryCache(0), logger)
			defer runner.Cache.Close()

			printSuccess("Serving %s and %s", StyleDoc1.Render(args[0]), StyleDoc2.Render(args[1]))
			printNextStep("Open", "http://"+addr)
			return server.New(s, runner, opts, logger).ListenAndServe(ctx, addr)
		},
	}
	flags.register(cmd, false)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().StringVar(&flags.title, "title", "", "page title")
	return cmd
}
