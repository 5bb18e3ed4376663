// Package main provides the CLI entrypoint for the keyopt command-line
// tool.
//
// run.go implements the "run" command: drives the population/climber
// engine for a fixed number of generations and reports the best layout
// found.
//
// view.go implements the "view" command: loads one layout file and renders
// its keymap and aggregate score.
//
// rank.go implements the "rank" command: scores several layout files
// against a corpus and renders them side by side, best first.
//
// generate.go implements the "generate" command: the eaopt-driven
// alternate search path over the same Genome adapter.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Data directories used by the CLI (relative to the working directory),
// matching the teacher's cmd/keycraft convention of fixed, well-known
// subdirectories rather than a config file.
const (
	layoutDir = "data/layouts/"
	corpusDir = "data/corpus/"
)

// appFlagsMap centralizes flag definitions so commands can select only the
// ones they need, following cmd/keycraft's appFlagsMap convention.
var appFlagsMap = map[string]cli.Flag{
	"corpus": &cli.StringFlag{
		Name:    "corpus",
		Aliases: []string{"c"},
		Usage:   "corpus file (one sample per line) to score layouts against",
		Value:   "default.txt",
	},
	"seed": &cli.Int64Flag{
		Name:  "seed",
		Usage: "PRNG seed; 0 seeds from the current time",
	},
	"pop-size": &cli.IntFlag{
		Name:  "pop-size",
		Usage: "total population size each generation",
		Value: 100,
	},
	"climbers": &cli.IntFlag{
		Name:  "climbers",
		Usage: "number of layouts promoted to local search each generation",
		Value: 20,
	},
	"generations": &cli.IntFlag{
		Name:    "generations",
		Aliases: []string{"g"},
		Usage:   "number of generations to run",
		Value:   50,
	},
	"workers": &cli.IntFlag{
		Name:  "workers",
		Usage: "number of independent populations to run concurrently; the best result wins",
		Value: 1,
	},
	"out": &cli.StringFlag{
		Name:  "out",
		Usage: "file to save the best layout to; empty means don't save",
	},
	"resume": &cli.StringFlag{
		Name:  "resume",
		Usage: "swap-table JSON file to warm-start placement from, and to update afterward; empty means start from a plain uniform origin",
	},
}

func flagsSlice(keys ...string) []cli.Flag {
	flags := make([]cli.Flag, 0, len(keys))
	for _, k := range keys {
		if f, ok := appFlagsMap[k]; ok {
			flags = append(flags, f)
		}
	}
	return flags
}

func main() {
	app := &cli.App{
		Name:  "keyopt",
		Usage: "search keyboard layouts for low typing effort on a corpus",
		Commands: []*cli.Command{
			runCommand,
			viewCommand,
			rankCommand,
			generateCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
