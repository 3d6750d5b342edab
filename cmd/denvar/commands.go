package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"git.sr.ht/~spc/go-log"
	"github.com/urfave/cli/v2"

	"github.com/denvar-go/denvar/internal/conf"
	"github.com/denvar-go/denvar/internal/denvar"
	"github.com/denvar-go/denvar/internal/heroku"
	"github.com/denvar-go/denvar/internal/l10n"
	"github.com/denvar-go/denvar/internal/sample"
)

func createAction(c *cli.Context) error {
	kind := denvar.FileTypeJSON
	dir := "."
	if c.Args().Len() > 0 {
		kind = denvar.FileType(c.Args().Get(0))
	}
	if c.Args().Len() > 1 {
		dir = c.Args().Get(1)
	}

	r, err := newResolver()
	if err != nil {
		return cli.Exit(err, 1)
	}

	path, err := sample.Create(kind, dir, r.Options().Files)
	if err != nil {
		return cli.Exit(l10n.T("cannot create sample file: %v", err), 1)
	}
	fmt.Fprintln(c.App.Writer, l10n.T("%q was successfully created.", path))
	return nil
}

func exportAction(c *cli.Context) error {
	r, err := newResolver()
	if err != nil {
		return cli.Exit(err, 1)
	}

	opts := r.Options()
	env, remote := opts.ExportEnvironment, opts.ExportRemote
	if c.Args().Len() > 0 {
		env = c.Args().Get(0)
	}
	if c.Args().Len() > 1 {
		remote = c.Args().Get(1)
	}

	path, err := sourcePath(c, r)
	if err != nil {
		return cli.Exit(err, 1)
	}

	p := newProgress(l10n.T("Exporting %s to %s...", env, remote))
	sink := &progressSink{Sink: heroku.NewSink(conf.Configuration.HerokuCommand, remote), progress: p}

	p.Start()
	report, err := r.Export(path, env, sink)
	p.Stop()
	if err != nil {
		return cli.Exit(err, 1)
	}
	log.Debugf("export run %v finished", report.ID)

	failed := report.Failed()
	for _, res := range failed {
		log.Errorf("%v: %v", res.Key, res.Err)
	}

	exported := len(report.Results) - len(failed)
	fmt.Fprintln(c.App.Writer, l10n.TN(
		"%d variable of %s exported to %s",
		"%d variables of %s exported to %s",
		uint32(exported), exported, env, remote))

	if len(failed) > 0 {
		return cli.Exit(l10n.TN(
			"%d variable could not be exported",
			"%d variables could not be exported",
			uint32(len(failed)), len(failed)), 1)
	}
	return nil
}

func runAction(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return cli.Exit(l10n.T("missing command to run"), 1)
	}

	r, err := newResolver()
	if err != nil {
		return cli.Exit(err, 1)
	}
	path, err := sourcePath(c, r)
	if err != nil {
		return cli.Exit(err, 1)
	}

	result, err := r.Load(path, c.String(cliEnvironment), denvar.ProcessEnv{})
	if err != nil {
		return cli.Exit(err, 1)
	}
	log.Debugf("%v variables loaded from %v, %v already set", len(result.Applied), path, len(result.Skipped))

	cmd := exec.Command(c.Args().First(), c.Args().Tail()...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = c.App.Writer
	cmd.Stderr = c.App.ErrWriter
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return cli.Exit("", exitErr.ExitCode())
		}
		return cli.Exit(err, 1)
	}
	return nil
}

// showAction resolves into a copy of the process environment, so values
// already exported in the shell show up as they would after a load.
func showAction(c *cli.Context) error {
	r, err := newResolver()
	if err != nil {
		return cli.Exit(err, 1)
	}
	path, err := sourcePath(c, r)
	if err != nil {
		return cli.Exit(err, 1)
	}

	layers, err := r.Store().Read(path, c.String(cliEnvironment))
	if err != nil {
		return cli.Exit(err, 1)
	}
	space := denvar.NewMapSpace(os.Environ())
	if _, err := r.Merge(layers, space); err != nil {
		return cli.Exit(err, 1)
	}

	seen := make(map[string]bool)
	for _, v := range layers.Pairs() {
		if seen[v.Name] {
			continue
		}
		seen[v.Name] = true
		fmt.Fprintf(c.App.Writer, "%s=%s\n", v.Name, space.Get(v.Name))
	}
	return nil
}

func npmConfigAction(c *cli.Context) error {
	r, err := newResolver()
	if err != nil {
		return cli.Exit(err, 1)
	}

	config := r.Extract(c.Args().First(), denvar.ProcessEnv{})
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(c.App.Writer, "%s=%s\n", k, config[k])
	}
	return nil
}
