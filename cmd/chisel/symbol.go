package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/chiseltools/chisel/internal/output"
	"github.com/chiseltools/chisel/internal/service/code"
)

func symbolCmd() *cli.Command {
	return &cli.Command{
		Name:      "symbol",
		Aliases:   []string{"symbol-info"},
		Usage:     "Describe the first definition of a symbol in a source file",
		ArgsUsage: "<file> <name>",
		Action:    runSymbolCmd,
	}
}

func runSymbolCmd(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected a file and a symbol name")
	}
	file := c.Args().Get(0)
	name := c.Args().Get(1)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	svc := code.New(code.WithConfig(cfg))
	result, err := svc.SymbolInfo(c.Context, file, name)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.SymbolSection(result, name))
}
