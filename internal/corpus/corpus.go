// Package corpus loads text into the sequence-of-byte-strings shape the
// keyopt core consumes (spec §6 external interfaces), plus descriptive
// bigram/unigram statistics (Top, String); the CLI commands read only
// Lines. The core
// optimizer package never touches a file; this package is the one
// explicit-argument entry point it's read through (SPEC_FULL.md's "no
// global corpus state" rule).
package corpus

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// Bigram is a 2-byte sequence, used only for the descriptive statistics
// -- the scorer itself derives its own bigram contributions
// directly from Lines, never from this aggregate.
type Bigram [2]byte

func (b Bigram) String() string { return string(b[:]) }

// BigramCount pairs a bigram with its observed frequency, sorted
// descending by Count when returned from Top.
type BigramCount struct {
	Bigram Bigram
	Count  int
}

// Corpus is a named sequence of byte strings (spec §6: "core consumes a
// sequence of byte strings... order is preserved; each string resets
// predecessor-slot tracking"), plus aggregate statistics for display.
type Corpus struct {
	Name     string
	Lines    [][]byte
	Unigrams map[byte]int
	Bigrams  map[Bigram]int
}

// New creates an empty, named corpus.
func New(name string) *Corpus {
	return &Corpus{
		Name:     name,
		Unigrams: make(map[byte]int),
		Bigrams:  make(map[Bigram]int),
	}
}

// NewFromFile loads name from filename, one corpus entry per non-blank
// line.
func NewFromFile(name, filename string) (*Corpus, error) {
	c := New(name)
	if err := c.loadFromFile(filename); err != nil {
		return nil, fmt.Errorf("corpus: load %s: %w", filename, err)
	}
	return c, nil
}

// AddLine appends one corpus entry (spec: an independent stream whose
// predecessor-slot tracking the scorer resets at its start) and folds its
// bytes into the unigram/bigram statistics.
func (c *Corpus) AddLine(line []byte) {
	cp := make([]byte, len(line))
	copy(cp, line)
	c.Lines = append(c.Lines, cp)

	var prev byte
	hasPrev := false
	for _, b := range cp {
		c.Unigrams[b]++
		if hasPrev {
			c.Bigrams[Bigram{prev, b}]++
		}
		prev = b
		hasPrev = true
	}
}

// closeFile closes f and logs any error, matching cmd/keyopt/helpers.go's
// closeFile and the teacher's internal/keycraft/common.go CloseFile
// convention for defer sites where a close failure shouldn't abort an
// already-successful read.
func closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		log.Printf("error closing file: %v", err)
	}
}

func (c *Corpus) loadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer closeFile(file)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		c.AddLine([]byte(strings.ToLower(line)))
	}
	return scanner.Err()
}

// Top returns the n most frequent bigrams, descending by count. n <= 0
// means "all of them".
func (c *Corpus) Top(n int) []BigramCount {
	bc := make([]BigramCount, 0, len(c.Bigrams))
	for bigram, count := range c.Bigrams {
		bc = append(bc, BigramCount{bigram, count})
	}
	sort.Slice(bc, func(i, j int) bool { return bc[i].Count > bc[j].Count })

	if n > 0 && n < len(bc) {
		bc = bc[:n]
	}
	return bc
}

// String renders the corpus name and its top 30 bigrams, matching the
// teacher's Corpus.String/StringSorted convention.
func (c *Corpus) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Corpus: %s (%d lines)\n", c.Name, len(c.Lines))
	for _, bc := range c.Top(30) {
		fmt.Fprintf(&sb, "%s: %d\n", bc.Bigram, bc.Count)
	}
	return sb.String()
}
