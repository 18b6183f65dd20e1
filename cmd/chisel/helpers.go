package main

import (
	"github.com/urfave/cli/v2"

	"github.com/chiseltools/chisel/internal/fileproc"
	"github.com/chiseltools/chisel/internal/output"
	"github.com/chiseltools/chisel/internal/progress"
	"github.com/chiseltools/chisel/internal/service/code"
	"github.com/chiseltools/chisel/pkg/config"
)

// loadConfig loads configuration and applies global flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}

	if root := c.String("root"); root != "" {
		cfg.Root = root
	}
	if c.String("format") != "" {
		cfg.Output.Format = c.String("format")
	}
	if c.Bool("no-color") {
		cfg.Output.Color = false
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	return cfg, nil
}

// newFormatter builds a formatter from config and global flags.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	return output.NewFormatter(
		output.ParseFormat(cfg.Output.Format),
		c.String("output"),
		cfg.Output.Color,
	)
}

// newService builds a code service with a progress bar attached for
// multi-file operations. Progress stays off the terminal when output is
// redirected to a file or JSON is requested.
func newService(c *cli.Context, cfg *config.Config, label string) *code.Service {
	quiet := c.String("output") != "" || output.ParseFormat(cfg.Output.Format) == output.FormatJSON

	return code.New(
		code.WithConfig(cfg),
		code.WithProgress(func(total int) (fileproc.ProgressFunc, func()) {
			tracker := progress.NewTracker(label, total, quiet)
			return tracker.Tick, tracker.FinishSuccess
		}),
	)
}
