package main

import (
	"dict-binder/binder"
	"dict-binder/diagnostic"
	"dict-binder/options"
	"dict-binder/section"
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type bindFlags struct {
	file     string
	section  string
	key      string
	value    string
	strategy string
	strict   bool
	dump     bool
}

func newBindCmd(root *rootFlags) *cobra.Command {
	flags := &bindFlags{}

	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Bind a configuration section into map[K]V",
		Long: `Bind loads a YAML file, selects a section and binds its children into a
map with the requested key and value types. Entries that cannot be bound are
reported as diagnostics, or fail the command with --strict.`,
		Example: `  # Bind the ports section into map[string]uint16
  dict-binder bind --file app.yaml --section server:ports --value uint16

  # Fail on the first bad entry
  dict-binder bind --file app.yaml --section limits --key int32 --value int64 --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBind(cmd, root, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.file, "file", "f", "", "YAML configuration file")
	f.StringVarP(&flags.section, "section", "s", "", "section path, e.g. server:ports (default: the whole file)")
	f.StringVar(&flags.key, "key", "string", "dictionary key type")
	f.StringVar(&flags.value, "value", "string", "dictionary value type")
	f.StringVar(&flags.strategy, "strategy", options.StrategyCached.String(), "container materialization strategy")
	f.BoolVar(&flags.strict, "strict", false, "fail on the first entry that cannot be bound")
	f.BoolVar(&flags.dump, "dump", false, "print a Go value dump instead of YAML")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runBind(cmd *cobra.Command, root *rootFlags, flags *bindFlags) error {
	strategy, err := options.ParseStrategy(flags.strategy)
	if err != nil {
		return err
	}

	keyType, err := lookupType(flags.key)
	if err != nil {
		return fmt.Errorf("--key: %w", err)
	}

	valueType, err := lookupType(flags.value)
	if err != nil {
		return fmt.Errorf("--value: %w", err)
	}

	tree, err := section.LoadFile(flags.file)
	if err != nil {
		return err
	}

	sec, ok := tree.Lookup(flags.section)
	if !ok {
		return fmt.Errorf("section %q not found in %s", flags.section, flags.file)
	}

	logger, err := root.logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var diags diagnostic.Diagnostics
	opts := options.New(
		options.WithStrategy(strategy),
		options.WithStrict(flags.strict),
		options.WithDiagnostics(&diags),
	)

	b := binder.New(binder.WithLogger(logger))

	d, err := b.Describe(reflect.MapOf(keyType, valueType))
	if err != nil {
		return err
	}

	out, err := b.Bind(reflect.Value{}, d, sec, opts)

	for _, entry := range diags.All() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", entry.Severity, entry)
	}

	if err != nil {
		return err
	}

	if !out.IsValid() {
		return nil
	}

	if flags.dump {
		fmt.Fprint(cmd.OutOrStdout(), spew.Sdump(out.Interface()))
		return nil
	}

	data, err := yaml.Marshal(out.Interface())
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
