package cmd

import (
	"github.com/urfave/cli/v2"
)

// FixupCmd creates the fixup command.
func FixupCmd() *cli.Command {
	return &cli.Command{
		Name:   "fixup",
		Usage:  "Fold the staged change into the branch commit that touched the same files",
		Flags:  commonFlags(),
		Action: fixupAction,
	}
}

func fixupAction(c *cli.Context) error {
	cmdCtx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer cmdCtx.Close()

	return cmdCtx.RunFixup(c.Context, OutputOptions(c))
}
