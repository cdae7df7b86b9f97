package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/smartsquash-go/config"
	"github.com/masmgr/smartsquash-go/internal/fixup"
	"github.com/masmgr/smartsquash-go/internal/git"
	"github.com/masmgr/smartsquash-go/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	flags := append(commonFlags(), &cli.BoolFlag{
		Name:    "squash",
		Aliases: []string{"s"},
		Usage:   "Squash similar commits on your feature branch",
	})
	return &cli.App{
		Name:    "smartsquash",
		Usage:   "Fold staged changes and squash similar commits on a feature branch",
		Version: "1.0.0",
		Commands: []*cli.Command{
			FixupCmd(),
			SquashCmd(),
			PlanCmd(),
			InitCmd(),
		},
		Flags:  flags,
		Action: rootAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Specify repo to modify. Uses the working directory by default",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "target-branch",
			Aliases: []string{"t"},
			Usage:   "Specify branch to target (default: from config or 'master')",
		},
		&cli.BoolFlag{
			Name:  "dry",
			Usage: "Run dry: compute the result without rewriting history",
		},
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "Include unstaged changes of tracked files in the fixup",
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "Changed-path engine (go-git, cli)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, script)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "script", "todo":
		return output.FormatScript
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults and applies CLI
// overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	if target := c.String("target-branch"); target != "" {
		cfg.TargetBranch = target
	}
	if engine := c.String("engine"); engine != "" {
		cfg.Engine = engine
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if c.Bool("all") {
		cfg.Fixup.IncludeUnstaged = true
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// parseEngine maps a validated engine name to the git engine.
func parseEngine(s string) git.ChangeEngine {
	if s == string(git.EngineCLI) {
		return git.EngineCLI
	}
	return git.EngineGoGit
}

// parseOrder maps a validated order name to the fixup order.
func parseOrder(s string) fixup.Order {
	order, _ := fixup.ParseOrder(s)
	return order
}

// rootAction mirrors the classic invocation: fold staged changes first,
// then squash similar commits when --squash is given.
func rootAction(c *cli.Context) error {
	if c.NArg() > 0 {
		return cli.ShowAppHelp(c)
	}

	cmdCtx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer cmdCtx.Close()

	if err := cmdCtx.RunFixup(c.Context, OutputOptions(c)); err != nil {
		return err
	}
	if !c.Bool("squash") {
		return nil
	}
	return cmdCtx.RunSquash(c.Context, OutputOptions(c))
}

// Run executes the CLI application.
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := App().RunContext(ctx, os.Args); err != nil {
		stop()
		os.Exit(reportError(os.Stderr, err))
	}
}

// reportError prints err and returns the process exit code. Repository
// precondition failures are user errors and exit with 2.
func reportError(w io.Writer, err error) int {
	if git.IsPrecondition(err) {
		color.New(color.FgRed).Fprintln(w, err.Error())
		return 2
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}
