package options

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=StrategyEnum -trimprefix=Strategy -output=strategy_string.go

// StrategyEnum selects how a mutable container is materialized from the
// bind source. Every strategy produces the same entries and comparer; they
// differ in how much type introspection is repeated per call and per entry.
type StrategyEnum int

const (
	_ StrategyEnum = iota // skip zero value, StrategyCached is picked for it

	// StrategyCached resolves a type-erased adapter once per container type
	// and reuses it across calls.
	StrategyCached
	// StrategyReflect enumerates the source untyped and resolves the
	// insertion method by name on every call.
	StrategyReflect
	// StrategyLazyReflect is StrategyReflect, but the insertion method is only
	// resolved once the source yields its first entry.
	StrategyLazyReflect
	// StrategyPairs inserts copied entries through the pair-insertion method.
	StrategyPairs
	// StrategyCopyConstruct clones sources of the exact concrete type and
	// falls back to pairwise insertion for other implementations.
	StrategyCopyConstruct

	// StrategyTotal is a constant that represents the total number of strategies defined
	StrategyTotal = int(iota)
)

// Strategies returns every defined strategy in declaration order.
func Strategies() []StrategyEnum {
	out := make([]StrategyEnum, 0, StrategyTotal-1)
	for s := StrategyCached; int(s) < StrategyTotal; s++ {
		out = append(out, s)
	}

	return out
}

// ParseStrategy converts a strategy name, e.g. "lazy-reflect" or "LazyReflect".
func ParseStrategy(name string) (StrategyEnum, error) {
	norm := strings.ReplaceAll(strings.ToLower(name), "-", "")
	for _, s := range Strategies() {
		if strings.ToLower(s.String()) == norm {
			return s, nil
		}
	}

	return 0, fmt.Errorf("unknown strategy %q", name)
}
