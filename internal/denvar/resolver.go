package denvar

import (
	"fmt"
	"log/slog"
	"strings"
)

// Resolver merges source layers into a Space and recovers configuration
// from prefix-encoded variables.
type Resolver struct {
	opts   Options
	store  *Store
	logger *slog.Logger
}

// NewResolver returns a Resolver using opts. Unset options take their
// defaults. A nil logger means slog.Default().
func NewResolver(opts Options, logger *slog.Logger) (*Resolver, error) {
	store, err := NewStore(opts)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{opts: store.opts, store: store, logger: logger}, nil
}

// Options returns the options in effect, defaults included.
func (r *Resolver) Options() Options {
	return r.opts
}

// Store returns the Store the Resolver reads sources with.
func (r *Resolver) Store() *Store {
	return r.store
}

// MergeResult lists the keys a merge wrote and the keys it left alone
// because the Space already defined them.
type MergeResult struct {
	Applied []string
	Skipped []string
}

// Noop reports whether the merge wrote nothing.
func (m MergeResult) Noop() bool {
	return len(m.Applied) == 0
}

// Load reads env from the source at path and merges it into space.
// Nothing is written when the source cannot be read.
func (r *Resolver) Load(path, env string, space Space) (MergeResult, error) {
	layers, err := r.store.Read(path, env)
	if err != nil {
		r.logger.Debug("failed to read environment file", "path", path, "environment", env, "error", err)
		return MergeResult{}, err
	}
	return r.Merge(layers, space)
}

// Merge writes the common layer and then the environment layer into space.
// A key is written only if space does not define it at that moment, so
// pre-existing values win over both layers and common wins over env.
func (r *Resolver) Merge(layers Layers, space Space) (MergeResult, error) {
	var result MergeResult
	for _, layer := range []Layer{layers.Common, layers.Env} {
		for _, v := range layer {
			if space.Has(v.Name) {
				result.Skipped = append(result.Skipped, v.Name)
				continue
			}
			if err := space.Set(v.Name, v.Value); err != nil {
				return result, fmt.Errorf("failed to set %s: %w", v.Name, err)
			}
			result.Applied = append(result.Applied, v.Name)
		}
	}

	r.logger.Debug("merged environment",
		"path", layers.Path,
		"environment", layers.Environment,
		"applied", len(result.Applied),
		"skipped", len(result.Skipped))
	return result, nil
}

// Extract returns the variables of space encoded for the common group or
// for group, keyed by the remainder after the prefix. Group matching is
// case-sensitive. When both encodings yield the same key, the group value
// wins. An empty group matches the common group only.
func (r *Resolver) Extract(group string, space Space) map[string]string {
	config := make(map[string]string)
	keys := space.Keys()

	prefixes := []string{r.opts.prefix(r.opts.CommonGroup)}
	if group != "" && group != r.opts.CommonGroup {
		prefixes = append(prefixes, r.opts.prefix(group))
	}

	for _, prefix := range prefixes {
		for _, key := range keys {
			name, ok := strings.CutPrefix(key, prefix)
			if !ok || name == "" {
				continue
			}
			config[name] = space.Get(key)
		}
	}
	return config
}
