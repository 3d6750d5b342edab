package main

import (
	"log/slog"
	"os"
	"strings"

	"git.sr.ht/~spc/go-log"
	"github.com/urfave/cli/v2"

	"github.com/denvar-go/denvar/internal/conf"
	"github.com/denvar-go/denvar/internal/l10n"
)

// Version is set at build time.
var Version = "dev"

const (
	cliLogLevel    = "log-level"
	cliSource      = "source"
	cliEnvironment = "environment"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "denvar"
	app.Version = Version
	app.Usage = l10n.T("load per-environment variables from an environment file")

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  cliLogLevel,
			Value: strings.ToLower(conf.Configuration.LogLevel.String()),
			Usage: l10n.T("set the log level (error, warn, info, debug, trace)"),
		},
		&cli.StringFlag{
			Name:    cliSource,
			Aliases: []string{"f"},
			Value:   conf.Configuration.Source,
			Usage:   l10n.T("read variables from `FILE` instead of env.json or .env"),
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "create",
			Aliases:   []string{"c"},
			Usage:     l10n.T("create a sample environment file"),
			ArgsUsage: "[json|npmrc] [DIRECTORY]",
			Action:    createAction,
		},
		{
			Name:      "export-heroku",
			Aliases:   []string{"exph"},
			Usage:     l10n.T("push an environment to Heroku config vars"),
			ArgsUsage: "[ENVIRONMENT] [REMOTE]",
			Action:    exportAction,
		},
		{
			Name:      "run",
			Usage:     l10n.T("run a command with an environment loaded"),
			ArgsUsage: "-- COMMAND [ARGS...]",
			Flags:     []cli.Flag{environmentFlag()},
			Action:    runAction,
		},
		{
			Name:   "show",
			Usage:  l10n.T("print the resolved variables of an environment"),
			Flags:  []cli.Flag{environmentFlag()},
			Action: showAction,
		},
		{
			Name:      "npm-config",
			Usage:     l10n.T("print variables set through npm_config_ prefixes"),
			ArgsUsage: "[GROUP]",
			Action:    npmConfigAction,
		},
	}

	app.Before = beforeAction
	app.Action = func(c *cli.Context) error {
		return cli.ShowAppHelp(c)
	}

	return app
}

func environmentFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    cliEnvironment,
		Aliases: []string{"e"},
		Usage:   l10n.T("load `NAME` (default: development)"),
	}
}

// beforeAction sets the log level of both the CLI logger and the slog
// default used by the internal packages.
func beforeAction(c *cli.Context) error {
	level, err := log.ParseLevel(c.String(cliLogLevel))
	if err != nil {
		return cli.Exit(err, 1)
	}
	log.SetLevel(level)

	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(c.String(cliLogLevel))); err != nil {
		// trace has no slog counterpart
		slogLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: slogLevel})))

	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
