package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/anshos/internal/ipc"
	"github.com/1broseidon/anshos/internal/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
	}

	var local bool
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Long: `Start the MCP server on stdio. Designed to be invoked by MCP clients.

By default the tools drive the running daemon over its socket. With --local
the server hosts its own window manager instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.load()
			if err != nil {
				return err
			}
			logger := newLogger(os.Stderr, res.Config.SlogLevel())

			var desktop mcp.Desktop = ipc.NewClient()
			if local {
				mgr, registry := newManager(res.Config, logger)
				desktop = mcp.NewLocal(mgr, registry)
			}
			server := mcp.NewServer(desktop, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx)
		},
	}
	serve.Flags().BoolVar(&local, "local", false, "Host an in-process window manager instead of using the daemon")

	cmd.AddCommand(serve)
	return cmd
}

