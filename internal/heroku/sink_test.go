package heroku

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSink_DefaultCommand(t *testing.T) {
	s := NewSink("", "staging")
	assert.Equal(t, DefaultCommand, s.Command)
	assert.Equal(t, "staging", s.Remote)
}

func TestSink_Args(t *testing.T) {
	s := NewSink("heroku", "heroku")
	assert.Equal(t,
		[]string{"config:set", "DB_URL=postgres://u:p@h/db?x=1 y", "--remote", "heroku"},
		s.args("DB_URL", "postgres://u:p@h/db?x=1 y"))
}

// fakeHeroku writes a script that records its arguments and exits with code.
func fakeHeroku(t *testing.T, code int) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	script := "#!/bin/sh\n" +
		"printf '%s|' \"$@\" >> '" + logPath + "'\n" +
		"echo >> '" + logPath + "'\n" +
		"echo 'remote says no' >&2\n" +
		"exit " + strconv.Itoa(code) + "\n"
	path := filepath.Join(dir, "heroku")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path, logPath
}

func TestSink_Write(t *testing.T) {
	command, logPath := fakeHeroku(t, 0)
	s := NewSink(command, "production")

	require.NoError(t, s.Write("A", "1"))
	require.NoError(t, s.Write("B", "two words"))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"config:set|A=1|--remote|production|",
		"config:set|B=two words|--remote|production|",
	}, lines)
}

func TestSink_WriteFailure(t *testing.T) {
	command, _ := fakeHeroku(t, 1)
	s := NewSink(command, "production")

	err := s.Write("A", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:set A failed")
	assert.Contains(t, err.Error(), "remote says no")
}

func TestSink_MissingCommand(t *testing.T) {
	s := NewSink(filepath.Join(t.TempDir(), "no-such-heroku"), "heroku")
	assert.Error(t, s.Write("A", "1"))
}
