package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "dict-binder",
		Short:         "Bind configuration sections into dictionaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log skipped and failing entries")

	cmd.AddCommand(
		newBindCmd(flags),
		newStrategiesCmd(),
	)

	return cmd
}

func (f *rootFlags) logger() (*zap.Logger, error) {
	if !f.verbose {
		return zap.NewNop(), nil
	}

	return zap.NewDevelopment()
}
