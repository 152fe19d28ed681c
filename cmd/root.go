package main

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/gig-conflicts/internal/config"
)

const defaultConfigPath = "config.toml"

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "gig-conflicts",
		Short:         "Booking conflict detection for performers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "path to config.toml")

	cmd.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newConflictsCommand(opts),
	)
	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.configPath)
}
