// Command rxbuild renders and tests YAML pattern recipes.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/coregx/rxbuild/engine"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// errNoMatch is returned by match when no input matched; main turns it into
// exit status 1, like grep.
var errNoMatch = errors.New("no input matched")

func main() {
	err := newApp(os.Stdout, os.Stderr).Run(os.Args)
	switch {
	case err == nil:
	case errors.Is(err, errNoMatch):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:  "rxbuild",
		Usage: "Render and test regular expressions described as YAML recipes",
		Description: `A recipe lists the steps of a builder chain:

  flags: [case_insensitive]
  steps:
    - start: true
      exactly: 1
      of: "p"

Example:
  rxbuild literal word.yaml
  rxbuild match word.yaml "some input" "other input"`,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level (trace, debug, info, warn, error)",
				EnvVars: []string{"RXBUILD_LOG_LEVEL"},
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"s"},
				Usage:   "Matching engine: auto, re2 or backtrack",
				Value:   "auto",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-match timeout for the backtracking engine (0 disables)",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "Disable colored output",
				EnvVars: []string{"NO_COLOR"},
			},
		},
		Commands: []*cli.Command{
			literalCommand(),
			matchCommand(),
		},
	}
}

// engineConfig builds the engine configuration from the global flags.
func engineConfig(c *cli.Context) (engine.Config, error) {
	cfg := engine.DefaultConfig()

	level, err := zerolog.ParseLevel(c.String("log-level"))
	if err != nil {
		return cfg, fmt.Errorf("invalid --log-level: %w", err)
	}
	cfg.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        c.App.ErrWriter,
		NoColor:    c.Bool("no-color"),
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()

	strategy, ok := engine.ParseStrategy(c.String("strategy"))
	if !ok {
		return cfg, fmt.Errorf("invalid --strategy %q", c.String("strategy"))
	}
	cfg.Strategy = strategy
	cfg.MatchTimeout = c.Duration("timeout")

	if c.Bool("no-color") {
		color.NoColor = true
	}
	return cfg, cfg.Validate()
}
