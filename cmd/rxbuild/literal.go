package main

import (
	"errors"
	"fmt"

	"github.com/coregx/rxbuild/recipe"
	"github.com/urfave/cli/v2"
)

func literalCommand() *cli.Command {
	return &cli.Command{
		Name:      "literal",
		Usage:     "Print the pattern a recipe builds",
		ArgsUsage: "RECIPE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("literal expects exactly one RECIPE argument")
			}
			r, err := recipe.Load(c.Args().First())
			if err != nil {
				return err
			}

			b := r.Builder()
			lit := b.Literal()
			if err := b.Err(); err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, lit)
			if flags := b.Flags(); flags != "" {
				fmt.Fprintf(c.App.Writer, "flags: %s\n", flags)
			}
			return nil
		},
	}
}
