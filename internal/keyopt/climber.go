package keyopt

import (
	"math"
	"math/rand"
)

// maxClimbIterations bounds a single Climb invocation even if neither
// stopping condition ever fires (spec §4.3: "after 10,000 iterations:
// done").
const maxClimbIterations = 10000

// climbClamp is 1 - 2^-53, the largest float64 strictly less than 1 that
// is representable with full precision below 1 — the clamp spec §4.3 step
// 1 applies to the decay factor.
const climbClamp = 0.9999999999999999

// Climb improves layout by repeated single-swap shuffles, stopping on a
// plateau or no-progress signal (spec §4.3). It returns a layout whose
// score is always >= layout's: the last clone that improved on it, or
// layout itself when no candidate did. layout's placement is never changed
// (Climb clones before shuffling, per the mutation contract shared with
// Population); an unevaluated layout has its score set in place first.
//
// If elite, a stronger decay (decay^4, see SPEC_FULL.md open question
// resolution 3) is used to detect plateaus earlier, favoring global
// exploration over deep local refinement of the generation's best layout.
//
// st, if non-nil, records every accepted swap's (slot, key) pairs with
// that iteration's improvement/weight/decay (spec §3 "Updated by the hill
// climber when it accepts a move"), feeding NewOriginFromSwapTable's
// swap-table-guided placement on a later run. A nil st is a plain no-op
// receiver (SwapTable.Record handles it), so callers that don't care about
// persisted history pass nil freely.
func Climb(rng *rand.Rand, layout *Layout, corpus [][]byte, outerIter int, elite bool, st *SwapTable) *Layout {
	debugAssert(outerIter >= 1, "Climb: outerIter must be >= 1, got %d", outerIter)

	decay := 1 - 1/float64(outerIter)
	if decay > climbClamp {
		decay = climbClamp
	}
	if elite {
		decay = decay * decay * decay * decay
	}

	best := layout
	if !best.Evaluated() {
		best.SetScore(Score(best, corpus))
	}

	var avg, weightedAvg, sumWeights, lastImprovement float64
	for i := 1; i <= maxClimbIterations; i++ {
		candidate := best.Clone()
		candidate.Shuffle(rng, 1)
		candidate.SetScore(Score(candidate, corpus))

		thisImprovement := candidate.Score() - best.Score()
		if thisImprovement < 0 {
			thisImprovement = 0
		}

		avg = thisImprovement/float64(i) + avg*float64(i-1)/float64(i)

		delta := thisImprovement - lastImprovement
		lastImprovement = thisImprovement

		weight := 1.0
		if delta > 0 {
			weight = 1 + 0.01*math.Pow(delta, 0.9)
		}

		sumWeights *= decay
		weightedAvg = (weightedAvg*sumWeights + thisImprovement*weight) / (sumWeights + weight)
		sumWeights += weight

		if candidate.Score() > best.Score() {
			recordSwapMoves(st, best, candidate, thisImprovement, weight, decay)
			candidate.positiveIterations++
			best = candidate
		}

		plateauing := weightedAvg < avg && i > 1
		notStarting := avg <= 0 && i >= 90
		if plateauing || notStarting {
			break
		}
	}

	return best
}

// recordSwapMoves diffs prev against next (which differ by exactly the one
// swap shuffleOnce performed) and feeds each changed (slot, key) pair into
// st. A no-op when st is nil.
func recordSwapMoves(st *SwapTable, prev, next *Layout, improvement, weight, decay float64) {
	if st == nil {
		return
	}
	for idx := 0; idx < int(numRows)*int(numCols); idx++ {
		slot := Slot(idx)
		nextKey, nextOK := next.KeyAt(slot)
		prevKey, prevOK := prev.KeyAt(slot)
		if nextOK && (!prevOK || nextKey != prevKey) {
			st.Record(slot, nextKey, improvement, weight, decay)
		}
	}
}
