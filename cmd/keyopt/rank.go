package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rbscholtus/keyopt/internal/keyopt"
	"github.com/urfave/cli/v2"
)

// rankCommand scores several layout files against a corpus and renders
// them best-first, following cmd/keycraft's rank command.
var rankCommand = &cli.Command{
	Name:      "rank",
	Usage:     "rank layout files by score against a corpus",
	ArgsUsage: "<layout1> <layout2> ...",
	Flags:     flagsSlice("corpus"),
	Action:    rankAction,
}

type rankedLayout struct {
	name  string
	score float64
}

func rankAction(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("need at least 1 layout")
	}

	corp, err := loadCorpus(c.String("corpus"))
	if err != nil {
		return fmt.Errorf("could not load corpus: %w", err)
	}

	ranked := make([]rankedLayout, 0, c.Args().Len())
	for _, name := range c.Args().Slice() {
		path := filepath.Join(layoutDir, ensureKlf(name))
		layout, err := loadLayoutFile(path)
		if err != nil {
			return err
		}
		ranked = append(ranked, rankedLayout{name: name, score: keyopt.Score(layout, corp.Lines)})
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AlignHeader: text.AlignCenter, Align: text.AlignRight},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, AlignHeader: text.AlignCenter, Align: text.AlignRight},
	})
	tw.AppendHeader(table.Row{"#", "Layout", "Score"})
	for i, r := range ranked {
		tw.AppendRow(table.Row{i + 1, r.name, fmt.Sprintf("%.6f", r.score)})
	}
	fmt.Println(tw.Render())
	return nil
}
