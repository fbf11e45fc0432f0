package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"inkwell/internal/config"
	"inkwell/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "inkwell",
		Short:         "Blogging platform API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "optional config file (yaml, toml or json)")

	serve := newServeCmd(&configPath)
	root.AddCommand(
		serve,
		newMigrateCmd(&configPath),
		newSeedCmd(&configPath),
	)
	// running the binary without a subcommand starts the server
	root.RunE = serve.RunE

	return root
}

// bootstrap loads config and builds the process logger, reporting any
// config warnings through it.
func bootstrap(configPath string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.Log)
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}
	return cfg, log, nil
}
