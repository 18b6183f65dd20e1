package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/chiseltools/chisel/internal/output"
	"github.com/chiseltools/chisel/internal/service/code"
)

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a source file and print its concrete syntax tree",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "positions",
				Aliases: []string{"p"},
				Usage:   "Include line/column positions on every node",
			},
		},
		Action: runParseCmd,
	}
}

func runParseCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one file argument")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	svc := code.New(code.WithConfig(cfg))
	tree, err := svc.Parse(c.Context, c.Args().First(), c.Bool("positions"))
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(&output.TreeView{Tree: tree})
}
