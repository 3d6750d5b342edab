package denvar

import (
	"fmt"
	"strings"
)

// Variable is a single name/value pair of a layer.
type Variable struct {
	Name  string
	Value string
}

// Layer is an ordered list of variables, in document order.
type Layer []Variable

// set adds or replaces name, keeping the position of its first occurrence.
func (l Layer) set(name, value string) Layer {
	for i := range l {
		if l[i].Name == name {
			l[i].Value = value
			return l
		}
	}
	return append(l, Variable{Name: name, Value: value})
}

// checkName rejects names that cannot be set in an environment: empty
// names and names containing "=" or NUL.
func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, "=\x00") {
		return fmt.Errorf("%w: %q", errInvalidName, name)
	}
	return nil
}

// Layers is the result of reading a source for one environment.
type Layers struct {
	Path        string
	Environment string
	// Common is nil when the source has no common layer.
	Common Layer
	Env    Layer
}

// Pairs returns the common variables followed by the environment variables.
// Keys defined in both layers appear twice.
func (ls Layers) Pairs() []Variable {
	pairs := make([]Variable, 0, len(ls.Common)+len(ls.Env))
	pairs = append(pairs, ls.Common...)
	pairs = append(pairs, ls.Env...)
	return pairs
}
