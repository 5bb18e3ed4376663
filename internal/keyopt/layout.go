package keyopt

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// slotRef is one entry of Layout.reverse: the slot a byte currently maps
// to, and whether any key occupies it. Kept as a flat 128-entry array
// (spec §9 performance note) rather than a map so scoring never allocates.
type slotRef struct {
	slot Slot
	ok   bool
}

// Layout is the central aggregate (spec §3): a total bijection from every
// occupiable Slot to a Key, a derived reverse index for O(1) scoring
// lookups, and the metadata the population engine and dashboard need.
type Layout struct {
	placement [int(numRows) * int(numCols)]Key
	occupied  [int(numRows) * int(numCols)]bool
	reverse   [128]slotRef

	id                 uuid.UUID
	generation         int
	lineage            string
	score              float64
	evaluated          bool
	isElite            bool
	positiveIterations int
}

// ID returns the layout's unique identifier.
func (l *Layout) ID() uuid.UUID { return l.id }

// Generation returns the generation this layout was created in.
func (l *Layout) Generation() int { return l.generation }

// Lineage returns the dotted-and-dashed genealogy string, human-readable
// only (spec §3). Grounded on original_source/keyboard.rs::mutate_from's
// "{parent}-{gen}.{id}" concatenation.
func (l *Layout) Lineage() string { return l.lineage }

// Score returns the cached score. Meaningful only when Evaluated is true.
func (l *Layout) Score() float64 { return l.score }

// Evaluated reports whether Score reflects the current placement.
func (l *Layout) Evaluated() bool { return l.evaluated }

// IsElite reports whether this layout is the current generation's elite.
func (l *Layout) IsElite() bool { return l.isElite }

// PositiveIterations returns the count of climb steps that improved this
// lineage (spec §3).
func (l *Layout) PositiveIterations() int { return l.positiveIterations }

// SetScore records a freshly computed score and marks the layout
// evaluated. Population and Climber call this after invoking Score; it is
// not meant for general use.
func (l *Layout) SetScore(score float64) {
	l.score = score
	l.evaluated = true
}

// setElite sets or clears the elite flag (population engine only).
func (l *Layout) setElite(elite bool) { l.isElite = elite }

// GetKeyInfo reports the slot the given byte currently occupies, if any.
// This is the O(1) reverse lookup the scorer's inner loop depends on
// (spec §4.2, §9).
func (l *Layout) GetKeyInfo(b byte) (Slot, bool) {
	ref := l.reverse[b]
	return ref.slot, ref.ok
}

// KeyAt returns the key occupying s, if any.
func (l *Layout) KeyAt(s Slot) (Key, bool) {
	return l.placement[s], l.occupied[s]
}

// place puts key at slot unconditionally, refreshing the reverse map for
// both its base and shift bytes. Internal: callers must have already
// verified slot is in ValidSet(key) (invariant 2) or be restoring a
// previously valid configuration (Clone).
func (l *Layout) place(slot Slot, key Key) {
	l.placement[slot] = key
	l.occupied[slot] = true
	l.reverse[key.Base] = slotRef{slot, true}
	l.reverse[key.Shift] = slotRef{slot, true}
}

// checkPlacement verifies invariant 2 and returns an error wrapping
// ErrInvalidKeyPlacement if violated. Used by untrusted construction paths (file
// loading); the in-package origin/shuffle/clone paths never need it
// because they only ever choose slots drawn from ValidSet itself.
func checkPlacement(key Key, slot Slot) error {
	for _, s := range ValidSet(key) {
		if s == slot {
			return nil
		}
	}
	return fmt.Errorf("%w: %v at %v", ErrInvalidKeyPlacement, key, slot)
}

// NewEmpty returns a Layout with no keys placed, for CLI layout-file
// loading to build up via PlaceForFile rather than starting from the
// canonical origin (spec §6: file loading is an external concern with its
// own construction path, not a mutation of NewOrigin's placement).
func NewEmpty() *Layout {
	return &Layout{id: uuid.New(), lineage: "loaded"}
}

// PlaceForFile places key at slot after checking invariant 2, for CLI
// layout-file loading where the input is untrusted (unlike the in-package
// origin/shuffle/clone paths, which only ever draw from ValidSet itself).
func PlaceForFile(l *Layout, slot Slot, key Key) error {
	if err := checkPlacement(key, slot); err != nil {
		return err
	}
	l.place(slot, key)
	return nil
}

// NewOrigin builds the canonical starting placement (spec §3 "Lifecycle"):
// static keys at their single legal slot, swappable keys at their
// canonicalPlacement slot (a fixed assignment respecting every key's
// invalidColumns). It is not shuffled; callers that want a randomized
// starting layout call Shuffle afterward (the population engine shuffles
// each origin copy 30 times, spec §4.5).
func NewOrigin() *Layout {
	l := &Layout{id: uuid.New(), lineage: "origin"}
	for _, ss := range StaticKeys {
		l.place(ss.slot, ss.key)
	}
	for i, key := range SwappableKeys {
		l.place(canonicalPlacement[i], key)
	}
	return l
}

// Clone deep-copies the layout, assigning it a fresh id and a lineage that
// records its parent (spec §3 "mutation of a parent"; format grounded on
// original_source/keyboard.rs::mutate_from).
func (l *Layout) Clone() *Layout {
	c := *l
	c.id = uuid.New()
	c.generation = l.generation + 1
	c.lineage = fmt.Sprintf("%s-%d.%s", l.lineage, c.generation, shortID(c.id))
	c.isElite = false
	c.positiveIterations = l.positiveIterations
	return &c
}

func shortID(id uuid.UUID) string {
	s := id.String()
	return s[:strings.IndexByte(s, '-')]
}

// shuffleRetryBudget bounds the search for a mutually-legal swap target
// before giving up as a programmer error (spec §4.4: "the draw is
// retried... precondition is that at least one such swap exists").
const shuffleRetryBudget = 64

// Shuffle performs n swaps, each individually preserving invariants 1-3,
// and clears Evaluated (spec §4.4).
func (l *Layout) Shuffle(rng *rand.Rand, n int) {
	for i := 0; i < n; i++ {
		l.shuffleOnce(rng)
	}
	l.evaluated = false
}

// shuffleOnce performs the one-swap procedure of spec §4.4.
func (l *Layout) shuffleOnce(rng *rand.Rand) {
	for attempt := 0; attempt < shuffleRetryBudget; attempt++ {
		row := Row(1 + rng.Intn(3))     // avoid the number row
		col := Col(rng.Intn(10))        // avoid right-pinky extensions
		from := NewSlot(row, col)
		key, ok := l.KeyAt(from)
		if !ok || IsStatic(key) {
			continue
		}

		valid := ValidSet(key)
		rng.Shuffle(len(valid), func(i, j int) { valid[i], valid[j] = valid[j], valid[i] })

		for _, to := range valid {
			if to == from {
				continue
			}
			other, ok := l.KeyAt(to)
			if !ok {
				continue
			}
			if IsStatic(other) {
				continue
			}
			if !containsSlot(ValidSet(other), from) {
				continue
			}
			l.place(from, other)
			l.place(to, key)
			return
		}
	}
	debugAssert(false, "shuffle: no mutually-legal swap target found after %d attempts", shuffleRetryBudget)
}

func containsSlot(slots []Slot, target Slot) bool {
	for _, s := range slots {
		if s == target {
			return true
		}
	}
	return false
}

// DisplayRows returns a 4-row array of the base characters currently
// occupying each row, left-to-right by column, for terminal rendering
// (spec §6 observability). Unoccupied slots render as a space.
func (l *Layout) DisplayRows() [numRows][numCols]byte {
	var rows [numRows][numCols]byte
	for r := Row(0); r < numRows; r++ {
		for c := Col(0); c < numCols; c++ {
			s := NewSlot(r, c)
			if key, ok := l.KeyAt(s); ok {
				rows[r][c] = key.Base
			} else {
				rows[r][c] = ' '
			}
		}
	}
	return rows
}

// String renders the layout's four DisplayRows as lines of base characters,
// matching the teacher's SplitLayout.String layout-dump convention. The
// newline key's base byte is written as-is, so the home row breaks after
// column 11 and the output has five line breaks.
func (l *Layout) String() string {
	rows := l.DisplayRows()
	var sb strings.Builder
	for _, row := range rows {
		sb.Write(row[:])
		sb.WriteByte('\n')
	}
	return sb.String()
}
