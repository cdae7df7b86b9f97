package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/smartsquash-go/config"
)

// InitCmd creates the init command, which writes the default configuration.
func InitCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Configuration file to write (.json, .yaml or .yml)",
				Value:   ".smartsquash.json",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing file",
			},
		},
		Action: initAction,
	}
}

func initAction(c *cli.Context) error {
	path := c.String("path")
	if err := writeDefaultConfig(path, c.Bool("force")); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Newf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}
