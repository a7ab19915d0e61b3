// Package main provides the CLI entrypoint for dict-binder.
//
// dict-binder loads a YAML configuration file and binds one of its sections
// into a dictionary, printing the result together with the entries that
// could not be bound:
//   - bind: bind a section into map[K]V and print it
//   - strategies: list the container materialization strategies
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
