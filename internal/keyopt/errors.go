package keyopt

import "errors"

// Error kinds the core distinguishes (spec §7). All other anomalous
// conditions (NaN scores, a non-finite temperature, an empty candidate
// list, a shuffle that cannot find a legal target after its retry budget)
// are programmer errors and trip debugAssert instead of returning one of
// these.
var (
	// ErrEmptyCorpus is returned by (*Population).EvalGenPop when invoked
	// with a corpus that has no entries.
	ErrEmptyCorpus = errors.New("keyopt: corpus has no entries")

	// ErrInvalidKeyPlacement signals an attempt to place a key outside its
	// ValidSet, or to move a static key. Callers that respect ValidSet and
	// IsStatic never trigger it; it exists for defensive construction
	// paths (e.g. loading a layout from an untrusted file).
	ErrInvalidKeyPlacement = errors.New("keyopt: key placed outside its valid set")

	// ErrConfigInvalid is returned by NewPopulation when climberCnt >
	// popSize, popSize == 0, or climberCnt < 1.
	ErrConfigInvalid = errors.New("keyopt: invalid population configuration")
)
