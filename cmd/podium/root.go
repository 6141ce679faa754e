package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/podium/internal/config"
	"github.com/okian/podium/pkg/logger"
)

// cli holds state shared by the subcommands.
type cli struct {
	configPath string
	cfg        *config.Config
	log        logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "podium",
		Short: "Medal standings and participation analytics over historical results",
		Long: `podium loads the per-athlete results file and the NOC to region lookup,
normalizes them once, and answers analytical queries over HTTP or from the
command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (overrides "+config.EnvConfigFile+")")

	root.AddCommand(newServeCmd(c), newQueryCmd(c), newGenerateCmd(c))
	return root
}

// init loads configuration and the logger. Servers log to stdout, other
// commands to stderr so their stdout stays machine readable.
func (c *cli) init(cmd *cobra.Command) error {
	if c.configPath != "" {
		if err := os.Setenv(config.EnvConfigFile, c.configPath); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}

	var w io.Writer = cmd.ErrOrStderr()
	if cmd.Name() == serveCmdName {
		w = cmd.OutOrStdout()
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(w)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}

	c.cfg = cfg
	c.log = logger.Get()
	return nil
}
