package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tsawler/epubgrep"
)

// Exit codes follow the grep convention.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitUsage   = 2
)

func main() {
	app := &cli.App{
		Name:      "epubgrep",
		Usage:     "search EPUB books for a regular expression",
		ArgsUsage: "PATTERN FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "ignore-case",
				Aliases: []string{"i"},
				Usage:   "case-insensitive matching",
			},
			&cli.BoolFlag{
				Name:    "word-regexp",
				Aliases: []string{"w"},
				Usage:   "match whole words only",
			},
			&cli.BoolFlag{
				Name:    "count",
				Aliases: []string{"c"},
				Usage:   "print per-book match counts instead of matches",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "suppress output, exit immediately on the first match",
			},
			&cli.StringFlag{
				Name:  "color",
				Value: "auto",
				Usage: "highlight matches: always, auto or never",
			},
		},
		Action:          run,
		HideHelpCommand: true,
	}

	if err := app.Run(os.Args); err != nil {
		// Exit-coded errors are handled inside Run; anything else is
		// a flag-parsing failure.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

func run(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		cli.ShowAppHelp(c)
		return cli.Exit("", exitUsage)
	}

	mode, err := epubgrep.ParseColorMode(c.String("color"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("epubgrep: %v", err), exitUsage)
	}

	opts := epubgrep.Options{
		IgnoreCase: c.Bool("ignore-case"),
		WordRegexp: c.Bool("word-regexp"),
		Count:      c.Bool("count"),
		Quiet:      c.Bool("quiet"),
		Color:      mode,
	}

	found, err := epubgrep.Search(args[0], args[1:], opts)
	if err != nil {
		return cli.Exit(fmt.Sprintf("epubgrep: %v", err), exitUsage)
	}
	if !found {
		return cli.Exit("", exitNoMatch)
	}
	return nil
}
