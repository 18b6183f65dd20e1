package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/chiseltools/chisel/internal/output"
)

func renameCmd() *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Usage:     "Rename every occurrence of an identifier across a file or directory",
		ArgsUsage: "<old-name> <new-name> [path]",
		Description: `The rename is textual, not semantic: every identifier token whose text
exactly matches the old name is replaced, regardless of scope. Preview
with --dry-run before applying.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Compute and report the rename without writing files",
			},
			&cli.StringSliceFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Restrict to these file extensions (repeatable), e.g. -t py",
			},
		},
		Action: runRenameCmd,
	}
}

func runRenameCmd(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("expected an old name and a new name")
	}
	oldName := c.Args().Get(0)
	newName := c.Args().Get(1)
	path := "."
	if c.Args().Len() > 2 {
		path = c.Args().Get(2)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	svc := newService(c, cfg, "Renaming...")
	result, err := svc.Rename(c.Context, path, oldName, newName, c.StringSlice("type"), c.Bool("dry-run"))
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if result.Occurrences == 0 && formatter.Format() == output.FormatText {
		formatter.Info("%s", result.Message)
		return nil
	}
	if err := formatter.Output(output.RenameTable(result)); err != nil {
		return err
	}
	if formatter.Format() == output.FormatText {
		formatter.Success("%s", result.Message)
	}
	return nil
}
