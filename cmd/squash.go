package cmd

import (
	"github.com/urfave/cli/v2"
)

// SquashCmd creates the squash command.
func SquashCmd() *cli.Command {
	return &cli.Command{
		Name:   "squash",
		Usage:  "Squash commits with identical footprints into their earliest counterpart",
		Flags:  commonFlags(),
		Action: squashAction,
	}
}

func squashAction(c *cli.Context) error {
	cmdCtx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer cmdCtx.Close()

	return cmdCtx.RunSquash(c.Context, OutputOptions(c))
}
