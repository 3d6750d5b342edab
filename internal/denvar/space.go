package denvar

import (
	"os"
	"sort"
	"strings"
)

// Space is a key/value store variables are merged into, such as the
// process environment.
type Space interface {
	Has(key string) bool
	Get(key string) string
	Set(key, value string) error
	Keys() []string
}

// ProcessEnv is the Space backed by the process environment.
type ProcessEnv struct{}

func (ProcessEnv) Has(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func (ProcessEnv) Get(key string) string {
	return os.Getenv(key)
}

func (ProcessEnv) Set(key, value string) error {
	return os.Setenv(key, value)
}

func (ProcessEnv) Keys() []string {
	return environKeys(os.Environ())
}

// MapSpace is an in-memory Space.
type MapSpace map[string]string

// NewMapSpace returns a MapSpace holding the entries of an environ slice
// ("KEY=VALUE"). Entries without "=" are ignored.
func NewMapSpace(environ []string) MapSpace {
	m := make(MapSpace, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		m[key] = value
	}
	return m
}

func (m MapSpace) Has(key string) bool {
	_, ok := m[key]
	return ok
}

func (m MapSpace) Get(key string) string {
	return m[key]
}

func (m MapSpace) Set(key, value string) error {
	m[key] = value
	return nil
}

// Keys returns the keys in sorted order.
func (m MapSpace) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func environKeys(environ []string) []string {
	keys := make([]string, 0, len(environ))
	for _, entry := range environ {
		if key, _, ok := strings.Cut(entry, "="); ok {
			keys = append(keys, key)
		}
	}
	return keys
}
