package main

import (
	"dict-binder/options"
	"fmt"

	"github.com/spf13/cobra"
)

var strategyHelp = map[options.StrategyEnum]string{
	options.StrategyCached:        "cached type-erased adapter per container type (default)",
	options.StrategyReflect:       "untyped enumeration, insertion method resolved per call",
	options.StrategyLazyReflect:   "like reflect, insertion method resolved on the first entry",
	options.StrategyPairs:         "copies through pair insertion",
	options.StrategyCopyConstruct: "clones the exact concrete type, pairwise otherwise",
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List container materialization strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, s := range options.Strategies() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", s, strategyHelp[s])
			}

			return nil
		},
	}
}
