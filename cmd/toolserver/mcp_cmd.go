package main

import (
	"github.com/habiliai/toolserver/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tools as an MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			s, logger, err := newToolServer(cfg)
			if err != nil {
				return err
			}

			return mcpserver.New(s.Registry(), version, logger).ServeStdio()
		},
	}
}
