package keyopt

import (
	"math/rand"
	"testing"
)

func TestSwapScoreUpdateDropsAfterZeroObservation(t *testing.T) {
	var s SwapScore
	s.Update(1.0, 1.0, 0.5)
	first := s.WeightedAvg
	s.Update(1.0, 1.0, 0.5)
	s.Update(0.0, 1.0, 0.5)
	if s.WeightedAvg >= first {
		t.Fatalf("WeightedAvg = %v after a zero observation, want it to have dropped below the all-positive average %v", s.WeightedAvg, first)
	}
}

func TestSwapTableRecordIsNilSafe(t *testing.T) {
	var st *SwapTable
	st.Record(NewSlot(HomeRow, ColLPinky), KeyA, 1.0, 1.0, 0.5)
}

func TestSwapTableCandidatesForExcludesTakenSlots(t *testing.T) {
	st := NewSwapTable()
	valid := ValidSet(KeyA)
	taken := map[Slot]bool{valid[0]: true}

	candidates := st.CandidatesFor(KeyA, taken)
	for _, c := range candidates {
		if c.Slot == valid[0] {
			t.Fatalf("CandidatesFor returned a taken slot %v", valid[0])
		}
	}
	if len(candidates) != len(valid)-1 {
		t.Fatalf("CandidatesFor(KeyA) returned %d candidates, want %d", len(candidates), len(valid)-1)
	}
}

func TestSwapTableEntriesRoundTrip(t *testing.T) {
	st := NewSwapTable()
	slot := ValidSet(KeyA)[0]
	st.Record(slot, KeyA, 2.0, 1.0, 0.5)

	rebuilt := NewSwapTableFromEntries(st.Entries())
	got := rebuilt.Get(slot, KeyA)
	want := st.Get(slot, KeyA)
	if got.WeightedAvg != want.WeightedAvg || got.TotalWeight != want.TotalWeight {
		t.Fatalf("round-tripped entry = %+v, want %+v", got, want)
	}
}

func TestNewOriginFromSwapTableSatisfiesInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	st := NewSwapTable()

	// Bias KeyA heavily toward one particular legal slot so the softmax
	// selection is no longer uniform, exercising the weighted path rather
	// than only the nil/zero-history fallback.
	biasedSlot := ValidSet(KeyA)[0]
	st.Get(biasedSlot, KeyA).Update(10.0, 1.0, 0.5)

	l := NewOriginFromSwapTable(st, rng)
	assertInvariants(t, l)
}

func TestNewOriginFromSwapTableNilTableDegradesToUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	l := NewOriginFromSwapTable(nil, rng)
	assertInvariants(t, l)
}
