// Package sample writes starter environment files into a project.
package sample

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/denvar-go/denvar/internal/denvar"
)

//go:embed env.json
var envJSON []byte

//go:embed npmrc
var npmrc []byte

// ErrExists is returned when the target file is already present.
var ErrExists = errors.New("file already exists")

// Create writes the sample file of kind into dir and returns its path.
// File names come from names. An unknown kind writes the JSON sample, and a
// dir that is not a directory is replaced by the current directory.
// Existing files are never overwritten.
func Create(kind denvar.FileType, dir string, names map[denvar.FileType]string) (string, error) {
	content := envJSON
	if kind == denvar.FileTypeNpmrc {
		content = npmrc
	} else {
		kind = denvar.FileTypeJSON
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		slog.Warn("not a directory, using current directory", "dir", dir)
		dir = "."
	}
	path := filepath.Join(dir, names[kind])

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return path, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return path, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, f.Close()
}
