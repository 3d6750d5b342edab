// Package heroku pushes variables to a Heroku app's config vars through the
// Heroku CLI.
package heroku

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// DefaultCommand is the Heroku CLI executable.
const DefaultCommand = "heroku"

// Sink sets one config var per Write by running
// "<command> config:set KEY=VALUE --remote <remote>".
type Sink struct {
	Command string
	Remote  string
}

// NewSink returns a Sink for remote. An empty command means DefaultCommand.
func NewSink(command, remote string) *Sink {
	if command == "" {
		command = DefaultCommand
	}
	return &Sink{Command: command, Remote: remote}
}

func (s *Sink) args(key, value string) []string {
	return []string{"config:set", key + "=" + value, "--remote", s.Remote}
}

// Write sets key to value on the remote. Arguments are passed to the
// command directly, without a shell.
func (s *Sink) Write(key, value string) error {
	out, err := exec.Command(s.Command, s.args(key, value)...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s config:set %s failed: %w: %s", s.Command, key, err, msg)
		}
		return fmt.Errorf("%s config:set %s failed: %w", s.Command, key, err)
	}

	slog.Debug("config var set", "key", key, "remote", s.Remote)
	return nil
}
