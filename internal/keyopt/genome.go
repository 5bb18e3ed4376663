package keyopt

import (
	"math/rand"

	"github.com/MaxHalford/eaopt"
)

// Genome adapts Layout to eaopt.Genome so the generational loop can
// optionally run through eaopt.GA as an alternate driver to the
// hand-rolled Population engine (SPEC_FULL.md DOMAIN STACK). The
// hand-rolled engine (population.go) remains the spec-normative driver
// that every invariant in spec §8 is tested against; this adapter exists
// so the CLI's "generate" command can also exercise eaopt's own selection
// and generational-replacement machinery against the same scorer.
type Genome struct {
	Layout *Layout
	Corpus [][]byte
}

// Evaluate scores the wrapped layout. eaopt minimizes, so the returned
// fitness is the negative of Score (higher ergonomic score is better).
func (g *Genome) Evaluate() (float64, error) {
	if len(g.Corpus) == 0 {
		return 0, ErrEmptyCorpus
	}
	score := Score(g.Layout, g.Corpus)
	g.Layout.SetScore(score)
	return -score, nil
}

// Mutate applies one shuffle swap, matching the hand-rolled engine's
// per-candidate mutation granularity.
func (g *Genome) Mutate(rng *rand.Rand) {
	g.Layout.Shuffle(rng, 1)
}

// Crossover is a no-op: layouts are permutations with hard placement
// constraints (spec §3 invariants), so naive gene-wise recombination would
// violate the bijection invariant. eaopt requires Crossover to exist, but
// spec's own design notes reserve cross-generational recombination for a
// later pass (SPEC_FULL.md open question resolution 5) — so this method
// intentionally leaves both genomes unchanged.
func (g *Genome) Crossover(other eaopt.Genome, rng *rand.Rand) {}

// Clone deep-copies the wrapped layout.
func (g *Genome) Clone() eaopt.Genome {
	return &Genome{Layout: g.Layout.Clone(), Corpus: g.Corpus}
}

// NewGenomeFactory returns an eaopt.GAConfig-compatible factory that seeds
// each genome from a freshly shuffled origin layout.
func NewGenomeFactory(corpus [][]byte) func(rng *rand.Rand) eaopt.Genome {
	return func(rng *rand.Rand) eaopt.Genome {
		l := NewOrigin()
		l.Shuffle(rng, originShuffleCount)
		return &Genome{Layout: l, Corpus: corpus}
	}
}
