package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rbscholtus/keyopt/internal/keyopt"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// runCommand drives the population/climber engine for --generations
// generations and reports the best layout found, optionally across
// multiple independent populations run concurrently (SPEC_FULL.md §5: the
// core engine stays single-threaded per Population; the CLI is where
// parallelism is composed, by running several whole Populations side by
// side and keeping the best).
var runCommand = &cli.Command{
	Name:      "run",
	Aliases:   []string{"r"},
	Usage:     "search for a low-effort layout by population/climber search",
	ArgsUsage: " ",
	Flags:     flagsSlice("corpus", "seed", "pop-size", "climbers", "generations", "workers", "out", "resume"),
	Action:    runAction,
}

// runResult is one worker's best layout, the score it reached, and (when
// --resume is set) the swap table it accumulated along the way.
type runResult struct {
	layout    *keyopt.Layout
	score     float64
	swapTable *keyopt.SwapTable
}

func runAction(c *cli.Context) error {
	corp, err := loadCorpus(c.String("corpus"))
	if err != nil {
		return fmt.Errorf("could not load corpus: %w", err)
	}

	generations := c.Int("generations")
	if generations < 1 {
		return fmt.Errorf("--generations must be at least 1, got %d", generations)
	}
	workers := c.Int("workers")
	if workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", workers)
	}

	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := keyopt.DefaultPopulationConfig(seed)
	if c.IsSet("pop-size") {
		cfg.PopSize = c.Int("pop-size")
	}
	if c.IsSet("climbers") {
		cfg.ClimberCnt = c.Int("climbers")
	}

	// --resume warm-starts placement from a persisted SwapTable
	// (SPEC_FULL.md SUPPLEMENTED FEATURES item 1). Each worker gets its own
	// independent copy loaded from the same snapshot, since SwapTable.Record
	// is not safe to call from multiple goroutines against one table.
	resumePath := c.String("resume")
	var resumeEntries []keyopt.SwapTableEntry
	if resumePath != "" {
		st, err := loadSwapTableFile(resumePath)
		if err != nil {
			return fmt.Errorf("could not load swap table from %s: %w", resumePath, err)
		}
		resumeEntries = st.Entries()
	}

	results := make([]runResult, workers)
	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		workerCfg := cfg
		workerCfg.Seed = cfg.Seed + int64(w)
		if resumePath != "" {
			workerCfg.SwapTable = keyopt.NewSwapTableFromEntries(resumeEntries)
		}
		g.Go(func() error {
			best, err := runOnePopulation(workerCfg, corp.Lines, generations)
			if err != nil {
				return err
			}
			results[w] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.score > best.score {
			best = r
		}
	}

	fmt.Printf("best score: %.6f (after %d generations, %d worker(s))\n", best.score, generations, workers)
	fmt.Print(best.layout.String())

	if out := c.String("out"); out != "" {
		if err := saveLayoutFile(out, best.layout); err != nil {
			return fmt.Errorf("could not save layout to %s: %w", out, err)
		}
		fmt.Printf("saved to %s\n", out)
	}

	if resumePath != "" && best.swapTable != nil {
		if err := saveSwapTableFile(resumePath, best.swapTable); err != nil {
			return fmt.Errorf("could not save swap table to %s: %w", resumePath, err)
		}
		fmt.Printf("swap table updated in %s\n", resumePath)
	}
	return nil
}

// runOnePopulation drives a single Population through generations rounds
// of spec §4.5's mutate/evaluate/select/climb cycle.
func runOnePopulation(cfg keyopt.PopulationConfig, corpus [][]byte, generations int) (runResult, error) {
	pop, err := keyopt.NewPopulation(cfg)
	if err != nil {
		return runResult{}, err
	}

	for gen := 1; gen <= generations; gen++ {
		pop.MutateClimbers()
		if err := pop.EvalGenPop(corpus); err != nil {
			return runResult{}, err
		}
		pop.SetupClimbers()
		pop.ClimbKbs(corpus, gen)
	}

	var best *keyopt.Layout
	for _, climber := range pop.Climbers() {
		if best == nil || climber.Score() > best.Score() {
			best = climber
		}
	}
	return runResult{layout: best, score: best.Score(), swapTable: pop.SwapTable()}, nil
}
