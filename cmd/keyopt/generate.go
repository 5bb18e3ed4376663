package main

import (
	"fmt"

	"github.com/MaxHalford/eaopt"
	"github.com/rbscholtus/keyopt/internal/keyopt"
	"github.com/urfave/cli/v2"
)

// generateCommand runs the same ergonomic scorer through eaopt's own
// generational GA instead of the hand-rolled Population engine
// (SPEC_FULL.md DOMAIN STACK: exercising eaopt.GA against the Genome
// adapter in internal/keyopt/genome.go). The hand-rolled engine remains
// the spec-normative search; this command is a second, independent driver
// over the same Scorer and Layout types for comparison.
var generateCommand = &cli.Command{
	Name:      "generate",
	Usage:     "search for a layout using eaopt's generational GA instead of the population engine",
	ArgsUsage: " ",
	Flags:     flagsSlice("corpus", "pop-size", "generations", "out"),
	Action:    generateAction,
}

func generateAction(c *cli.Context) error {
	corp, err := loadCorpus(c.String("corpus"))
	if err != nil {
		return fmt.Errorf("could not load corpus: %w", err)
	}

	gaConfig := eaopt.NewDefaultGAConfig()
	gaConfig.NGenerations = uint(c.Int("generations"))
	gaConfig.PopSize = uint(c.Int("pop-size"))
	gaConfig.NPops = 1
	gaConfig.HofSize = 1

	ga, err := gaConfig.NewGA()
	if err != nil {
		return fmt.Errorf("could not build GA: %w", err)
	}

	if err := ga.Minimize(eaopt.GenomeFactory(keyopt.NewGenomeFactory(corp.Lines))); err != nil {
		return fmt.Errorf("eaopt search failed: %w", err)
	}

	best := ga.HallOfFame[0].Genome.(*keyopt.Genome)
	fmt.Printf("best score: %.6f\n", best.Layout.Score())
	fmt.Print(best.Layout.String())

	if out := c.String("out"); out != "" {
		if err := saveLayoutFile(out, best.Layout); err != nil {
			return fmt.Errorf("could not save layout to %s: %w", out, err)
		}
		fmt.Printf("saved to %s\n", out)
	}
	return nil
}
