package main

import (
	"log/slog"

	"github.com/habiliai/toolserver"
	"github.com/habiliai/toolserver/config"
	"github.com/habiliai/toolserver/internal/mylog"
	"github.com/spf13/cobra"
)

var version = "dev"

type rootFlags struct {
	configFile string
	logLevel   string
	logHandler string
}

func newCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "toolserver",
		Short:        "Serve text tools to agents over HTTP",
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.logHandler, "log-handler", "", "log handler (default, json)")

	cmd.AddCommand(
		newServeCmd(flags),
		newMCPCmd(flags),
		newCallCmd(flags),
		newListCmd(flags),
	)

	return cmd
}

// loadConfig resolves the config file and environment, then applies the
// flags the user set explicitly.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.LogLevel = f.logLevel
	}
	if cmd.Flags().Changed("log-handler") {
		cfg.Log.LogHandler = f.logHandler
	}

	return cfg, nil
}

func newToolServer(cfg *config.Config) (*toolserver.ToolServer, *slog.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := mylog.NewLogger(cfg.Log.LogLevel, cfg.Log.LogHandler)
	s, err := toolserver.New(
		toolserver.WithConfig(cfg),
		toolserver.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	return s, logger, nil
}
