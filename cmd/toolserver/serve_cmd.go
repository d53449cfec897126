package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(root *rootFlags) *cobra.Command {
	kvargs := &struct {
		host      string
		port      int
		staticDir string
	}{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = kvargs.host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = kvargs.port
			}
			if cmd.Flags().Changed("static-dir") {
				cfg.Server.StaticDir = kvargs.staticDir
			}

			s, logger, err := newToolServer(cfg)
			if err != nil {
				return err
			}
			logger.Debug("start toolserver", "config", cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "http://localhost:%d/\n", cfg.Server.Port)
			return s.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&kvargs.host, "host", "", "host to listen on")
	cmd.Flags().IntVarP(&kvargs.port, "port", "p", 0, "port to listen on")
	cmd.Flags().StringVar(&kvargs.staticDir, "static-dir", "", "directory served for non-tool paths")

	return cmd
}
