package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coregx/rxbuild/recipe"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func matchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Run a recipe's pattern against inputs",
		ArgsUsage: "RECIPE INPUT...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "whole",
				Aliases: []string{"w"},
				Usage:   "Require the pattern to match the entire input",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return errors.New("match expects a RECIPE and at least one INPUT")
			}
			cfg, err := engineConfig(c)
			if err != nil {
				return err
			}
			r, err := recipe.Load(c.Args().First())
			if err != nil {
				return err
			}
			p, err := r.Builder().CompileWithConfig(cfg)
			if err != nil {
				return err
			}
			cfg.Logger.Info().
				Str("pattern", p.String()).
				Stringer("strategy", p.Strategy()).
				Msg("compiled recipe")

			hit := color.New(color.FgGreen, color.Bold)
			miss := color.New(color.FgRed)
			group := color.New(color.FgCyan)

			matched := 0
			for _, input := range c.Args().Tail() {
				var ok bool
				if c.Bool("whole") {
					ok, err = p.MatchesErr(input)
				} else {
					ok, err = p.MatchStringErr(input)
				}
				if err != nil {
					return fmt.Errorf("matching %q: %w", input, err)
				}
				if !ok {
					miss.Fprintf(c.App.Writer, "no match")
					fmt.Fprintf(c.App.Writer, "\t%q\n", input)
					continue
				}

				matched++
				m := p.FindStringSubmatch(input)
				hit.Fprintf(c.App.Writer, "match")
				fmt.Fprintf(c.App.Writer, "\t%q\t%q", input, m[0])
				if len(m) > 1 {
					groups := make([]string, 0, len(m)-1)
					for i, g := range m[1:] {
						groups = append(groups, fmt.Sprintf("%d=%q", i+1, g))
					}
					group.Fprintf(c.App.Writer, "\t%s", strings.Join(groups, " "))
				}
				fmt.Fprintln(c.App.Writer)
			}

			if matched == 0 {
				return errNoMatch
			}
			return nil
		},
	}
}
