package keyopt

import (
	"math/rand"

	"github.com/google/uuid"
)

// SwapScore is a running weighted statistic recording how historically
// beneficial it has been to place a given key at a given slot (spec §3).
// The hill climber updates it whenever it accepts a move; swap-table-
// guided initial placement (SPEC_FULL.md SUPPLEMENTED FEATURES, item 1)
// reads it to warm-start a new origin layout.
type SwapScore struct {
	WeightedAvg float64
	TotalWeight float64
}

// Update folds one more observed improvement into the running average,
// using the same decay-then-add shape as the hill climber's weighted mean
// (spec §4.3 step g), so a SwapTable accumulates history with the same
// recency bias the climber itself uses.
func (s *SwapScore) Update(improvement, weight, decay float64) {
	s.TotalWeight *= decay
	s.WeightedAvg = (s.WeightedAvg*s.TotalWeight + improvement*weight) / (s.TotalWeight + weight)
	s.TotalWeight += weight
}

// slotKeyPair indexes a SwapTable entry.
type slotKeyPair struct {
	Slot Slot
	Key  Key
}

// SwapTable is a dense map (slot, key) -> SwapScore, defined only for pairs
// where slot is in ValidSet(key) and key is swappable (spec §3).
type SwapTable struct {
	entries map[slotKeyPair]*SwapScore
}

// NewSwapTable builds an empty table pre-populated with a zero SwapScore
// for every legal (slot, key) pair, mirroring the teacher's dense-table
// construction idiom (internal/keycraft/scorer.go's analyser setup).
func NewSwapTable() *SwapTable {
	t := &SwapTable{entries: make(map[slotKeyPair]*SwapScore)}
	for _, key := range SwappableKeys {
		for _, slot := range ValidSet(key) {
			t.entries[slotKeyPair{slot, key}] = &SwapScore{}
		}
	}
	return t
}

// Get returns the SwapScore for (slot, key), or nil if the pair is not
// legal.
func (t *SwapTable) Get(slot Slot, key Key) *SwapScore {
	return t.entries[slotKeyPair{slot, key}]
}

// Record updates the SwapScore for (slot, key) after the hill climber
// accepts a move placing key at slot with the given improvement, weight,
// and decay (same three values Climb already computes per iteration). It
// is a no-op on a nil receiver so callers can pass an optional table
// through Climb without a conditional at every call site.
func (t *SwapTable) Record(slot Slot, key Key, improvement, weight, decay float64) {
	if t == nil {
		return
	}
	if s := t.Get(slot, key); s != nil {
		s.Update(improvement, weight, decay)
	}
}

// CandidatesFor returns one Candidate per legal slot for key, scored by
// accumulated SwapScore, for use with SelectCandidate (spec §4.6,
// SPEC_FULL.md SUPPLEMENTED FEATURES item 1).
func (t *SwapTable) CandidatesFor(key Key, taken map[Slot]bool) []Candidate {
	valid := ValidSet(key)
	out := make([]Candidate, 0, len(valid))
	for _, slot := range valid {
		if taken[slot] {
			continue
		}
		score := 0.0
		if s := t.Get(slot, key); s != nil {
			score = s.WeightedAvg
		}
		out = append(out, Candidate{Slot: slot, Key: key, RawScore: score})
	}
	return out
}

// SwapTableEntry, Entries and NewSwapTableFromEntries expose the table's
// contents as a flat slice for JSON persistence (cmd/keyopt's --resume convenience
// layer), matching the teacher's internal/keycraft/corpus.go convention of
// a small exported snapshot type alongside the live in-memory structure
// rather than marshalling the map keys directly (Go's encoding/json
// cannot use a struct as a map key).
type SwapTableEntry struct {
	Slot        Slot
	Key         Key
	WeightedAvg float64
	TotalWeight float64
}

// Entries snapshots the table for persistence.
func (t *SwapTable) Entries() []SwapTableEntry {
	out := make([]SwapTableEntry, 0, len(t.entries))
	for pair, s := range t.entries {
		out = append(out, SwapTableEntry{pair.Slot, pair.Key, s.WeightedAvg, s.TotalWeight})
	}
	return out
}

// NewSwapTableFromEntries rebuilds a table from a persisted snapshot,
// dropping any entry whose (slot, key) pair is no longer legal (e.g. a
// geometry change between runs).
func NewSwapTableFromEntries(entries []SwapTableEntry) *SwapTable {
	t := NewSwapTable()
	for _, e := range entries {
		if s := t.Get(e.Slot, e.Key); s != nil {
			s.WeightedAvg = e.WeightedAvg
			s.TotalWeight = e.TotalWeight
		}
	}
	return t
}

// NewOriginFromSwapTable builds a starting layout the same way NewOrigin
// does for static keys, but places swappable keys one at a time via the
// softmax-roulette candidate selector (§4.6) weighted by st's accumulated
// history instead of the fixed canonicalPlacement assignment — grounded on
// original_source/kb_builders.rs's place_keys_from_table. A nil st (or one
// with no accumulated history) degenerates to a uniform-random pick among
// each key's remaining legal slots, since every Candidate.RawScore is then
// 0 and SelectCandidate's softmax is uniform over equal scores. If earlier
// picks leave a later key with no free legal slot, placement starts over.
func NewOriginFromSwapTable(st *SwapTable, rng *rand.Rand) *Layout {
	if st == nil {
		st = NewSwapTable()
	}
	for {
		l := &Layout{id: uuid.New(), lineage: "origin"}
		for _, ss := range StaticKeys {
			l.place(ss.slot, ss.key)
		}

		taken := make(map[Slot]bool, len(SwappableKeys))
		complete := true
		for _, key := range SwappableKeys {
			candidates := st.CandidatesFor(key, taken)
			if len(candidates) == 0 {
				complete = false
				break
			}
			chosen := SelectCandidate(rng, candidates)
			l.place(chosen.Slot, chosen.Key)
			taken[chosen.Slot] = true
		}
		if complete {
			return l
		}
	}
}
