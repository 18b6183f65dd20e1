package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/chiseltools/chisel/internal/output"
	"github.com/chiseltools/chisel/internal/service/code"
	"github.com/chiseltools/chisel/internal/watch"
	"github.com/chiseltools/chisel/pkg/config"
	"github.com/chiseltools/chisel/pkg/models"
)

func refsCmd() *cli.Command {
	return &cli.Command{
		Name:      "refs",
		Aliases:   []string{"find-references"},
		Usage:     "Find every occurrence of an identifier across a file or directory",
		ArgsUsage: "<name> [path]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Restrict to these file extensions (repeatable), e.g. -t py",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Re-run the search when source files change",
			},
			&cli.DurationFlag{
				Name:  "debounce",
				Value: watch.DefaultDebounce,
				Usage: "How long edits must settle before re-running in watch mode",
			},
		},
		Action: runRefsCmd,
	}
}

func runRefsCmd(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("expected an identifier name")
	}
	name := c.Args().First()
	path := "."
	if c.Args().Len() > 1 {
		path = c.Args().Get(1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	svc := newService(c, cfg, "Scanning references...")
	refs, err := svc.FindReferences(c.Context, path, name, c.StringSlice("type"))
	if err != nil {
		return err
	}
	if err := printRefs(c, cfg, name, refs); err != nil {
		return err
	}

	if c.Bool("watch") {
		return watchRefs(c, cfg, svc, path, name)
	}
	return nil
}

func printRefs(c *cli.Context, cfg *config.Config, name string, refs *models.ReferenceSet) error {
	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if refs.Count() == 0 && formatter.Format() == output.FormatText {
		formatter.Info("No references to %q found (%d files scanned)", name, refs.FilesScanned)
		return nil
	}
	if err := formatter.Output(output.ReferencesTable(refs)); err != nil {
		return err
	}
	if cfg.Output.Verbose && len(refs.FilesSkipped) > 0 {
		for _, f := range refs.FilesSkipped {
			formatter.Warning("skipped (parse failure): %s", f)
		}
	}
	return nil
}

// watchRefs blocks re-running the search whenever a source file under
// path settles after an edit.
func watchRefs(c *cli.Context, cfg *config.Config, svc *code.Service, path, name string) error {
	w, err := watch.New(path, cfg, c.Duration("debounce"))
	if err != nil {
		return err
	}
	defer w.Stop()

	w.SetErrorHandler(func(err error) {
		color.Red("watch error: %v", err)
	})
	w.SetCallback(func(changed string) {
		color.Yellow("\nFile changed: %s", changed)
		refs, err := svc.FindReferences(c.Context, path, name, c.StringSlice("type"))
		if err != nil {
			color.Red("error: %v", err)
			return
		}
		if err := printRefs(c, cfg, name, refs); err != nil {
			color.Red("error: %v", err)
		}
	})

	color.Cyan("Watching %s for changes (Ctrl+C to stop)...", path)
	err = w.Start(c.Context)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
