package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/denvar-go/denvar/internal/denvar"
)

func newResolver() (*denvar.Resolver, error) {
	return denvar.NewResolver(denvar.Options{}, slog.Default())
}

// sourcePath returns the --source file, or the file discovered in the
// current directory.
func sourcePath(c *cli.Context, r *denvar.Resolver) (string, error) {
	if path := c.String(cliSource); path != "" {
		return path, nil
	}
	return r.Store().Discover(".")
}

// progress shows a spinner while a long action runs. It does nothing when
// stdout is not a terminal.
type progress struct {
	spinner *spinner.Spinner
}

func newProgress(msg string) *progress {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return &progress{}
	}
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = " " + msg
	return &progress{spinner: s}
}

func (p *progress) Start() {
	if p.spinner != nil {
		p.spinner.Start()
	}
}

func (p *progress) Stop() {
	if p.spinner != nil {
		p.spinner.Stop()
	}
}

func (p *progress) Update(msg string) {
	if p.spinner == nil {
		return
	}
	p.spinner.Lock()
	p.spinner.Suffix = " " + msg
	p.spinner.Unlock()
}

// progressSink reports each key on the spinner before writing it.
type progressSink struct {
	denvar.Sink
	progress *progress
}

func (s *progressSink) Write(key, value string) error {
	s.progress.Update(key)
	return s.Sink.Write(key, value)
}
