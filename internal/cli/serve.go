package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dreamburst/internal/server"
	"github.com/jmylchreest/dreamburst/pkg/smartpalette"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve palette extraction and brief generation over HTTP",
		Long: `Start the HTTP API:

  GET  /health           liveness check
  POST /palette          {"image": "<data URI>"} -> palette and look
  POST /initial_prompt   {"prompt": "<idea>"} -> {"brief": "..."}

Configuration is read from DREAMBURST_* environment variables and
GOOGLE_API_KEY. The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg.Server, g.newBrief(cfg.Brief, g.logger), smartpalette.DefaultOptions(), g.logger)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: $DREAMBURST_ADDR or 127.0.0.1:8000)")
	return cmd
}
