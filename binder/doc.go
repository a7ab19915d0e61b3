// Package binder populates dictionaries from configuration sections.
//
// Every child of the bound section becomes one entry: the child key is
// converted into the dictionary key type and the child subtree into the
// value type. Existing entries under the same key are used as the starting
// point for the value, so binding overlays configuration on top of defaults.
//
// Targets are either mutable concrete containers (map[K]V, *dict.Dict[K, V]),
// which are populated in place, or read-only views such as dict.ReadOnly,
// which are copied into a fresh *dict.Dict first. How that copy is made is
// selected with options.StrategyEnum; all strategies yield the same result.
//
//	b := binder.New()
//	ports, _, err := binder.BindMap(b, map[string]uint16{}, root, options.Options{})
package binder
