package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rbscholtus/keyopt/internal/corpus"
	"github.com/rbscholtus/keyopt/internal/keyopt"
)

// closeFile closes f and logs any error, matching the teacher's
// internal/keycraft/common.go CloseFile convention for defer sites where
// a close failure shouldn't abort an already-successful read or write.
func closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		log.Printf("error closing file: %v", err)
	}
}

// loadCorpus loads a named corpus file from corpusDir, matching
// cmd/keycraft's loadCorpus convention.
func loadCorpus(filename string) (*corpus.Corpus, error) {
	if filename == "" {
		return nil, fmt.Errorf("corpus file is required")
	}
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	path := filepath.Join(corpusDir, filename)
	return corpus.NewFromFile(name, path)
}

// loadLayoutFile parses a plain-text layout file: four lines of 13
// characters (NumRow, TopRow, HomeRow, BotRow; left to right), matching
// internal/keyopt.DisplayRows' row/column order. "~" or a space marks an
// empty slot and is skipped in any column; a complete layout places all 47
// keys, which leaves NumRow and HomeRow column 12 and BotRow columns 10-12
// empty. Characters past column 12 are ignored. Blank lines and lines
// starting with '#' are skipped, mirroring cmd/keycraft's comment
// handling in its own layout file format.
func loadLayoutFile(path string) (*keyopt.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer closeFile(f)

	var rows [][]rune
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		rows = append(rows, []rune(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) != 4 {
		return nil, fmt.Errorf("layout file %s: expected 4 rows, got %d", path, len(rows))
	}

	l := keyopt.NewEmpty()
	placed := 0
	for rowIdx, row := range rows {
		for colIdx, r := range row {
			if colIdx >= 13 {
				break
			}
			if r == '~' || r == ' ' {
				continue
			}
			key, ok := keyopt.KeyForBase(byte(r))
			if !ok {
				return nil, fmt.Errorf("layout file %s: row %d has unknown key %q", path, rowIdx, r)
			}
			slot := keyopt.NewSlot(keyopt.Row(rowIdx), keyopt.Col(colIdx))
			if err := keyopt.PlaceForFile(l, slot, key); err != nil {
				return nil, fmt.Errorf("layout file %s: %w", path, err)
			}
			placed++
		}
	}
	if placed != 47 {
		return nil, fmt.Errorf("layout file %s: placed %d of 47 keys, file must be a complete layout", path, placed)
	}
	return l, nil
}

// saveLayoutFile writes l's DisplayRows back out in loadLayoutFile's
// format.
func saveLayoutFile(path string, l *keyopt.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f)

	w := bufio.NewWriter(f)
	defer w.Flush()

	rows := l.DisplayRows()
	for _, row := range rows {
		for _, b := range row {
			if b == 0 {
				b = '~'
			}
			if err := w.WriteByte(b); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// loadSwapTableFile reads a persisted swap-table snapshot (cmd/keyopt's
// --resume flag), matching the teacher's internal/keycraft/corpus.go
// pattern of a JSON-encoded auxiliary file alongside the main data files.
// A missing file is not an error: --resume degrades to a fresh table.
func loadSwapTableFile(path string) (*keyopt.SwapTable, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return keyopt.NewSwapTable(), nil
	}
	if err != nil {
		return nil, err
	}
	defer closeFile(f)

	var entries []keyopt.SwapTableEntry
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("swap-table file %s: %w", path, err)
	}
	return keyopt.NewSwapTableFromEntries(entries), nil
}

// saveSwapTableFile persists st's accumulated history back to path.
func saveSwapTableFile(path string, st *keyopt.SwapTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(st.Entries())
}

func ensureKlf(name string) string {
	if strings.HasSuffix(name, ".klf") {
		return name
	}
	return name + ".klf"
}
