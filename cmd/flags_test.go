package cmd

import (
	"flag"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/smartsquash-go/internal/fixup"
	"github.com/masmgr/smartsquash-go/internal/git"
	"github.com/masmgr/smartsquash-go/internal/output"
)

// newFlagContext parses args against commonFlags the way a subcommand would.
// Aliases are not normalized here, so tests use long flag names.
func newFlagContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range commonFlags() {
		if err := f.Apply(set); err != nil {
			t.Fatalf("apply flag: %v", err)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cli.NewContext(App(), set, nil)
}

func TestGetOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  output.OutputFormat
	}{
		{input: "json", want: output.FormatJSON},
		{input: "script", want: output.FormatScript},
		{input: "todo", want: output.FormatScript},
		{input: "console", want: output.FormatConsole},
		{input: "unknown", want: output.FormatConsole},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := getOutputFormat(tt.input); got != tt.want {
				t.Fatalf("getOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEngine(t *testing.T) {
	if got := parseEngine("cli"); got != git.EngineCLI {
		t.Fatalf("parseEngine(cli) = %q", got)
	}
	if got := parseEngine("go-git"); got != git.EngineGoGit {
		t.Fatalf("parseEngine(go-git) = %q", got)
	}
}

func TestParseOrder(t *testing.T) {
	if got := parseOrder("newest-first"); got != fixup.OrderNewestFirst {
		t.Fatalf("parseOrder(newest-first) = %q", got)
	}
	if got := parseOrder("oldest-first"); got != fixup.OrderOldestFirst {
		t.Fatalf("parseOrder(oldest-first) = %q", got)
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c := newFlagContext(t,
		"--target-branch", "main",
		"--engine", "cli",
		"--log-level", "debug",
		"--all",
		"--include", "src/**",
		"--exclude", "vendor/**",
	)

	cfg, err := loadConfig(c)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.TargetBranch != "main" {
		t.Errorf("TargetBranch = %q, want main", cfg.TargetBranch)
	}
	if cfg.Engine != "cli" {
		t.Errorf("Engine = %q, want cli", cfg.Engine)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if !cfg.Fixup.IncludeUnstaged {
		t.Error("Fixup.IncludeUnstaged should be set by --all")
	}
	if len(cfg.Filters.Include) != 1 || cfg.Filters.Include[0] != "src/**" {
		t.Errorf("Filters.Include = %v", cfg.Filters.Include)
	}
	if len(cfg.Filters.Exclude) != 1 || cfg.Filters.Exclude[0] != "vendor/**" {
		t.Errorf("Filters.Exclude = %v", cfg.Filters.Exclude)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig(newFlagContext(t))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.TargetBranch != "master" || cfg.Engine != "go-git" || cfg.Fixup.IncludeUnstaged {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfig_InvalidEngine(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if _, err := loadConfig(newFlagContext(t, "--engine", "libgit2")); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}

func TestApp_Commands(t *testing.T) {
	app := App()
	want := map[string]bool{"fixup": false, "squash": false, "plan": false}
	for _, cmd := range app.Commands {
		if _, ok := want[cmd.Name]; ok {
			want[cmd.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}

	hasSquash := false
	for _, f := range app.Flags {
		for _, name := range f.Names() {
			if name == "s" {
				hasSquash = true
			}
		}
	}
	if !hasSquash {
		t.Error("root command should accept -s/--squash")
	}
}
