package denvar

import (
	"fmt"

	"dario.cat/mergo"
)

// FileType identifies a supported sample file flavour.
type FileType string

const (
	FileTypeJSON  FileType = "json"
	FileTypeNpmrc FileType = "npmrc"
)

// Options holds the reserved tokens used by a Resolver. Zero fields are
// filled from DefaultOptions.
type Options struct {
	// CommonKey is the source key of the layer applied to every environment.
	CommonKey string
	// Namespace and Separator build the prefix of encoded variables,
	// e.g. "npm_config" + "_" + group + "_".
	Namespace string
	Separator string
	// CommonGroup is the group token of common encoded variables.
	CommonGroup string

	Files      map[FileType]string
	LegacyFile string

	DefaultEnvironment string
	ExportEnvironment  string
	ExportRemote       string
}

// DefaultOptions returns the options denvar uses when none are given.
func DefaultOptions() Options {
	return Options{
		CommonKey:   "common",
		Namespace:   "npm_config",
		Separator:   "_",
		CommonGroup: "C",
		Files: map[FileType]string{
			FileTypeJSON:  "env.json",
			FileTypeNpmrc: ".npmrc",
		},
		LegacyFile:         ".env",
		DefaultEnvironment: "development",
		ExportEnvironment:  "production",
		ExportRemote:       "heroku",
	}
}

// withDefaults returns o with every zero field taken from DefaultOptions.
// The caller's Files map is left untouched.
func (o Options) withDefaults() (Options, error) {
	if o.Files != nil {
		files := make(map[FileType]string, len(o.Files))
		for k, v := range o.Files {
			files[k] = v
		}
		o.Files = files
	}
	if err := mergo.Merge(&o, DefaultOptions()); err != nil {
		return o, fmt.Errorf("failed to apply default options: %w", err)
	}
	return o, nil
}

// prefix returns the encoded-variable prefix for group.
func (o Options) prefix(group string) string {
	return o.Namespace + o.Separator + group + o.Separator
}
