package keyopt

import (
	"math/rand"
	"testing"
)

func TestSelectorUniformFallbackOnEqualScores(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	candidates := []Candidate{
		{Slot: NewSlot(HomeRow, ColLIndex), Key: KeyA, RawScore: 5.0},
		{Slot: NewSlot(HomeRow, ColRIndex), Key: KeyB, RawScore: 5.0},
		{Slot: NewSlot(TopRow, ColLMiddle), Key: KeyC, RawScore: 5.0},
	}

	counts := make(map[Slot]int)
	const trials = 9000
	for i := 0; i < trials; i++ {
		c := SelectCandidate(rng, candidates)
		counts[c.Slot]++
	}

	for _, c := range candidates {
		got := counts[c.Slot]
		frac := float64(got) / float64(trials)
		if frac < 0.25 || frac > 0.42 {
			t.Fatalf("uniform fallback skewed: slot %v picked %d/%d (%.3f), want ~1/3", c.Slot, got, trials, frac)
		}
	}
}

func TestTemperatureAtZeroVarianceIsHighest(t *testing.T) {
	t0 := temperature(0)
	t1 := temperature(0.25)
	if t1 >= t0 {
		t.Fatalf("temperature should fall as variance rises: temp(0)=%v temp(0.25)=%v", t0, t1)
	}
	if t1 > selectorDecayMin+0.01 {
		t.Fatalf("temperature at variance 0.25 should be close to DECAY_MIN=%v, got %v", selectorDecayMin, t1)
	}
}

func TestApplyMinMaxAllEqualYieldsZero(t *testing.T) {
	scores := []float64{3, 3, 3}
	applyMinMax(scores)
	for _, s := range scores {
		if s != 0 {
			t.Fatalf("applyMinMax with equal inputs should yield all zeros, got %v", scores)
		}
	}
}

func TestSelectCandidatePicksAmongProvided(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	candidates := []Candidate{
		{Slot: NewSlot(HomeRow, ColLIndex), Key: KeyA, RawScore: 1.0},
		{Slot: NewSlot(HomeRow, ColRIndex), Key: KeyB, RawScore: 9.0},
	}
	for i := 0; i < 50; i++ {
		got := SelectCandidate(rng, candidates)
		if got.Slot != candidates[0].Slot && got.Slot != candidates[1].Slot {
			t.Fatalf("SelectCandidate returned a slot not in the candidate list: %v", got.Slot)
		}
	}
}
