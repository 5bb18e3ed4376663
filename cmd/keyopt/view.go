package main

import (
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rbscholtus/keyopt/internal/keyopt"
	"github.com/urfave/cli/v2"
)

// viewCommand loads one layout file and renders its keymap and score
// against a corpus, following cmd/keycraft's view/RenderView split between
// data loading and go-pretty rendering.
var viewCommand = &cli.Command{
	Name:      "view",
	Aliases:   []string{"v"},
	Usage:     "show a layout's keymap and its score against a corpus",
	ArgsUsage: "<layout>",
	Flags:     flagsSlice("corpus"),
	Action:    viewAction,
}

func viewAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly 1 layout, got %d", c.Args().Len())
	}

	corp, err := loadCorpus(c.String("corpus"))
	if err != nil {
		return fmt.Errorf("could not load corpus: %w", err)
	}

	path := filepath.Join(layoutDir, ensureKlf(c.Args().First()))
	layout, err := loadLayoutFile(path)
	if err != nil {
		return err
	}
	score := keyopt.Score(layout, corp.Lines)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AlignHeader: text.AlignCenter, Align: text.AlignCenter},
	})
	tw.AppendHeader(table.Row{c.Args().First()})
	tw.AppendRow(table.Row{layoutBoardString(layout)})
	tw.AppendRow(table.Row{fmt.Sprintf("score: %.6f", score)})
	fmt.Println(tw.Render())
	return nil
}

// layoutBoardString renders a Layout's four DisplayRows as a plain ASCII
// block with a space after every character; this display form is not the
// file format loadLayoutFile reads.
func layoutBoardString(l *keyopt.Layout) string {
	rows := l.DisplayRows()
	out := ""
	for _, row := range rows {
		for _, b := range row {
			out += string(b) + " "
		}
		out += "\n"
	}
	return out
}
