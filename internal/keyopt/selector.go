package keyopt

import "math"

// Candidate is one weighted option offered to the softmax roulette
// selector (spec §4.6): a slot/key pair and its raw, unnormalized score.
type Candidate struct {
	Slot     Slot
	Key      Key
	RawScore float64
}

// temperature tuning constants, grounded verbatim on
// original_source/mapped_swap.rs::get_temp.
const (
	selectorDecayMin     = 0.01
	selectorDecayMaxPart = 0.14
	// -ln(2)/0.05: sets temperature ~0.08 at variance 0.05, sharpening as
	// variance rises further.
	selectorKTemp = -13.862943611198906
)

// SelectCandidate picks one candidate probabilistically via min-max
// normalization, adaptive-temperature softmax, and roulette selection
// (spec §4.6). candidates must be non-empty; an empty slice is a
// programmer error.
func SelectCandidate(rng randFloat64, candidates []Candidate) Candidate {
	debugAssert(len(candidates) > 0, "SelectCandidate: candidates is empty")

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		debugAssert(!math.IsNaN(c.RawScore) && !math.IsInf(c.RawScore, 0),
			"SelectCandidate: candidate %d has non-finite score %v", i, c.RawScore)
		scores[i] = c.RawScore
	}

	applyMinMax(scores)
	v := variance(scores)
	temp := temperature(v)
	applySoftmax(scores, temp)

	return rouletteSelect(rng, candidates, scores)
}

// randFloat64 is the minimal RNG surface SelectCandidate needs: a uniform
// draw in [0,1). Satisfied by *rand.Rand's Float64 method.
type randFloat64 interface {
	Float64() float64
}

func applyMinMax(scores []float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, s := range scores {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	if max > min {
		for i, s := range scores {
			scores[i] = (s - min) / (max - min)
		}
	} else {
		for i := range scores {
			scores[i] = 0
		}
	}
}

func variance(scores []float64) float64 {
	var mean float64
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))

	var v float64
	for _, s := range scores {
		d := s - mean
		v += d * d
	}
	return v / float64(len(scores))
}

// temperature computes softmax temperature from normalized-score variance
// (spec §4.6 step 3).
func temperature(v float64) float64 {
	debugAssert(v >= 0 && v <= 0.25, "temperature: variance %v out of [0,0.25]", v)
	return selectorDecayMin + selectorDecayMaxPart*math.Exp(selectorKTemp*v)
}

func applySoftmax(scores []float64, temp float64) {
	debugAssert(temp != 0, "applySoftmax: temperature is zero")

	total := 0.0
	for i, s := range scores {
		scores[i] = math.Exp(s / temp)
		total += scores[i]
	}
	if total == 0 {
		uniform := 1.0 / float64(len(scores))
		for i := range scores {
			scores[i] = uniform
		}
		return
	}
	for i := range scores {
		scores[i] /= total
	}
}

func rouletteSelect(rng randFloat64, candidates []Candidate, probs []float64) Candidate {
	r := rng.Float64()
	sum := 0.0
	for i, p := range probs {
		sum += p
		if sum >= r {
			return candidates[i]
		}
	}
	return candidates[len(candidates)-1]
}
