package execution

import (
	"encoding/json"
	"sort"
)

// ArgumentValues holds the resolved argument values of one field. It is
// immutable after construction and preserves explicit nulls as first-class
// entries: an argument supplied as null is distinguishable from an argument
// that was not supplied at all.
type ArgumentValues struct {
	values map[string]any
}

var noArgumentValues = ArgumentValues{
	// Allocate a non-nil map to eliminate nil checks in Lookup.
	values: map[string]any{},
}

// NoArgumentValues returns the empty argument value set.
func NoArgumentValues() ArgumentValues { return noArgumentValues }

// NewArgumentValues creates an ArgumentValues from the given values. The map
// is copied; the caller keeps ownership of its map.
func NewArgumentValues(values map[string]any) ArgumentValues {
	if len(values) == 0 {
		return noArgumentValues
	}
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return ArgumentValues{values: copied}
}

// Lookup returns the value for the given argument name. The second value is
// true when the argument was supplied, even when it was supplied as null.
func (args ArgumentValues) Lookup(name string) (value any, ok bool) {
	value, ok = args.values[name]
	return
}

// Get returns the value for the given argument name, or nil when absent.
func (args ArgumentValues) Get(name string) any {
	return args.values[name]
}

// Has reports whether the argument was supplied, including as explicit null.
func (args ArgumentValues) Has(name string) bool {
	_, ok := args.values[name]
	return ok
}

// Len returns the number of supplied arguments.
func (args ArgumentValues) Len() int { return len(args.values) }

// Names returns the supplied argument names in sorted order.
func (args ArgumentValues) Names() []string {
	names := make([]string, 0, len(args.values))
	for name := range args.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON serializes the argument map. Primarily used by tests and
// diagnostics.
func (args ArgumentValues) MarshalJSON() ([]byte, error) {
	return json.Marshal(args.values)
}
