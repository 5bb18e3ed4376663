// Package keyopt implements the layout optimizer core: geometry and cost
// tables, the Layout aggregate, the ergonomic Scorer, the hill climber, and
// the generational Population engine. The package is self-contained and
// single-threaded (see the concurrency note on Population) so that every
// exported entry point is a pure function of its explicit arguments — no
// package-level corpus, no hidden RNG.
package keyopt

import "fmt"

// Row identifies one of the four physical rows of the keyboard.
type Row uint8

const (
	NumRow Row = iota
	TopRow
	HomeRow
	BotRow
	numRows
)

// Col identifies one of the thirteen physical columns. Columns 0-9 are the
// ten main finger columns; 10-12 are the right-pinky symbol extensions
// (column 10 holds [, - and /; column 11 holds ], = and newline; column 12
// holds only backslash/pipe, on the top row).
type Col uint8

const (
	ColLPinky Col = iota
	ColLRing
	ColLMiddle
	ColLIndex
	ColLExt
	ColRExt
	ColRIndex
	ColRMiddle
	ColRRing
	ColRPinky
	ColRSymbol
	ColRNether
	ColRPipe
	numCols
)

// Hand identifies which hand strikes a column.
type Hand uint8

const (
	Left Hand = iota
	Right
)

// Finger identifies which finger strikes a column.
type Finger uint8

const (
	Pinky Finger = iota
	Ring
	Middle
	Index
)

// Slot is a physical key position, packed as row*numCols+col so it fits in
// a single byte and can index flat arrays directly.
type Slot uint8

// NewSlot builds a Slot from a row and column, panicking if either is out
// of range — callers construct slots only from the fixed geometry tables
// below, so an out-of-range value is a programmer error.
func NewSlot(row Row, col Col) Slot {
	if row >= numRows {
		panic(fmt.Sprintf("keyopt: row %d out of range", row))
	}
	if col >= numCols {
		panic(fmt.Sprintf("keyopt: col %d out of range", col))
	}
	return Slot(uint8(row)*uint8(numCols) + uint8(col))
}

func (s Slot) Row() Row { return Row(uint8(s) / uint8(numCols)) }
func (s Slot) Col() Col { return Col(uint8(s) % uint8(numCols)) }

func (s Slot) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row(), s.Col())
}

// handOf reports the hand that strikes a column: 0-4 left, 5-12 right.
func handOf(c Col) Hand {
	if c <= ColLExt {
		return Left
	}
	return Right
}

// Hand returns the hand that strikes s.
func (s Slot) Hand() Hand { return handOf(s.Col()) }

// fingerTable maps each column to the finger that strikes it.
var fingerTable = [numCols]Finger{
	ColLPinky:  Pinky,
	ColLRing:   Ring,
	ColLMiddle: Middle,
	ColLIndex:  Index,
	ColLExt:    Index,
	ColRExt:    Index,
	ColRIndex:  Index,
	ColRMiddle: Middle,
	ColRRing:   Ring,
	ColRPinky:  Pinky,
	ColRSymbol: Pinky,
	ColRNether: Pinky,
	ColRPipe:   Pinky,
}

// Finger returns the finger that strikes s.
func (s Slot) Finger() Finger { return fingerTable[s.Col()] }

// centerDistTable gives each column's distance, in columns, from its
// finger's home position. Used only to detect same-row rolls (§4.2, same-
// row roll check): a same-row bigram that moves closer to the hand's
// center is a roll.
var centerDistTable = [numCols]uint8{
	ColLPinky:  3,
	ColLRing:   2,
	ColLMiddle: 1,
	ColLIndex:  0,
	ColLExt:    1,
	ColRExt:    1,
	ColRIndex:  0,
	ColRMiddle: 1,
	ColRRing:   2,
	ColRPinky:  3,
	ColRSymbol: 4,
	ColRNether: 5,
	ColRPipe:   6,
}

// CenterDist returns s's distance from its finger's home position.
func (s Slot) CenterDist() uint8 { return centerDistTable[s.Col()] }

// Cost constants, all multiplicative factors against a baseline of 1.0.
// The "_S" skipgram constants are carried for completeness (and for any
// caller that wants to build its own skipgram-aware scorer on top of this
// package) but Score itself never reads them — see the "skipgram" open
// question resolved in SPEC_FULL.md.
const (
	DecLowBigram      = 0.8
	DecLowSkipgram    = 0.8
	DecMediumBigram   = 0.6
	DecMediumSkipgram = 0.8
	DecHighBigram     = 0.4
	DecHighSkipgram   = 0.7
	DecBrutalBigram   = 0.2
	DecBrutalSkipgram = 0.6
	IncLowBigram      = 1.2
	IncLowSkipgram    = 1.1
	IncMediumBigram   = 1.4
	IncMediumSkipgram = 1.2
)
