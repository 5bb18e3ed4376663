package keyopt

// Score computes the ergonomic score of layout against corpus (spec §4.2).
// Penalties are factors below 1 and bonuses factors above 1, so a higher
// score means less typing effort; every caller maximizes it.
// It is a pure, deterministic function of (layout.placement, corpus): the
// same inputs always produce the same float64, down to the bit, because
// every step below is IEEE-754 binary64 arithmetic with no
// order-of-operations ambiguity (spec §6 numeric boundaries).
//
// corpus is a sequence of byte strings; order is preserved and each string
// independently resets predecessor-slot tracking (spec §9, resolved: corpus
// boundaries reset).
func Score(layout *Layout, corpus [][]byte) float64 {
	var total float64
	for _, line := range corpus {
		var last Slot
		hasLast := false
		for _, b := range line {
			s, ok := layout.GetKeyInfo(b)
			if !ok {
				hasLast = false
				continue
			}
			if hasLast {
				total += globalAdjustments(s) * pairMultiplier(last, s)
			} else {
				total += globalAdjustments(s)
			}
			last = s
			hasLast = true
		}
	}
	return total
}

// globalAdjustments applies the per-keystroke penalty that does not depend
// on the predecessor (spec §4.2 "global_adjustments").
func globalAdjustments(s Slot) float64 {
	f, r := s.Finger(), s.Row()
	switch {
	case (f == Ring || f == Pinky) && r == BotRow:
		return DecLowBigram
	case f == Ring && r == TopRow:
		return DecLowBigram
	case f == Pinky && r == TopRow:
		return DecMediumBigram
	default:
		return 1.0
	}
}

// pairMultiplier is spec §4.2's "pair_multiplier", always invoked with
// is_bigram=true: the skipgram axis is never exercised by Score (see
// SPEC_FULL.md open question resolution 1), so the is_bigram parameter of
// the original contract is dropped here rather than threaded through
// unused.
func pairMultiplier(prev, cur Slot) float64 {
	if prev.Hand() != cur.Hand() {
		return 1.0
	}

	mult := indexExtensionPenalty(cur) * pinkyExtensionPenalty(cur) * numberRowPenalty(prev, cur)

	switch {
	case prev.Finger() == cur.Finger():
		mult *= sameFingerPenalty(prev, cur)
	case prev.Row() != cur.Row():
		mult *= diffFingerDiffRowPenalty(prev, cur)
	default:
		mult *= sameRowRollMultiplier(prev, cur)
	}
	return mult
}

// indexExtensionPenalty penalizes the index finger reaching into the two
// center columns (spec §4.2 item 1). Top/number rows at the left center
// column are free and its bottom-row "B" position takes the high penalty;
// the right center column is penalized at every row, increasingly toward
// the number row.
func indexExtensionPenalty(cur Slot) float64 {
	col := cur.Col()
	if col != ColLExt && col != ColRExt {
		return 1.0
	}
	row := cur.Row()
	switch {
	case col == ColLExt && (row == TopRow || row == NumRow):
		return 1.0
	case row == NumRow: // the "6" position
		return DecBrutalBigram
	case row == TopRow: // the "Y" position
		return DecHighBigram
	case col == ColLExt && row == BotRow: // the "B" position
		return DecHighBigram
	case row == HomeRow, row == BotRow: // home-row extensions and the "N" position
		return DecLowBigram
	default:
		return 1.0
	}
}

// pinkyExtensionPenalty penalizes reaches into the right-pinky symbol
// columns (spec §4.2 item 2): home-row column 10 is mild, the home-row
// newline column is moderate, the top row is moderate (column 10), high
// (column 11) or brutal (the pipe column), and the number-row brackets are
// brutal.
func pinkyExtensionPenalty(cur Slot) float64 {
	col := cur.Col()
	if col < ColRSymbol {
		return 1.0
	}
	row := cur.Row()
	switch row {
	case HomeRow:
		if col == ColRNether {
			return DecMediumBigram
		}
		return DecLowBigram
	case TopRow:
		if col == ColRPipe {
			return DecBrutalBigram
		}
		if col == ColRNether {
			return DecHighBigram
		}
		return DecMediumBigram
	case NumRow:
		return DecBrutalBigram
	default:
		return 1.0
	}
}

// numberRowPenalty applies the brutal number-row reach penalty whenever
// either key of the pair sits on the number row (spec §4.2 item 3).
func numberRowPenalty(prev, cur Slot) float64 {
	if prev.Row() == NumRow || cur.Row() == NumRow {
		return DecBrutalBigram
	}
	return 1.0
}

// sameFingerPenalty is the same-finger path (spec §4.2 item 4): a baseline
// same-finger-bigram penalty, scaled further by column distance, plus the
// row-diff penalty when the keys also span different rows.
func sameFingerPenalty(prev, cur Slot) float64 {
	mult := DecLowBigram
	switch colDistance(prev, cur) {
	case 0:
		// repeated key: no additional column penalty
	case 1:
		mult *= DecMediumBigram
	case 2:
		mult *= DecHighBigram
	default:
		mult *= DecBrutalBigram
	}
	if prev.Row() != cur.Row() {
		mult *= rowDiffPenalty(prev, cur)
	}
	return mult
}

// diffFingerDiffRowPenalty is the different-finger, different-row path
// (spec §4.2 item 5): the row-diff penalty, a combo classification, and a
// scissor check for adjacent columns.
func diffFingerDiffRowPenalty(prev, cur Slot) float64 {
	mult := rowDiffPenalty(prev, cur)
	mult *= comboMultiplier(prev, cur)
	mult *= scissorMultiplier(prev, cur)
	return mult
}

// rowDiffPenalty is the shared "Row penalty": an extra factor for the left
// hand (the stagger disfavors it) composed with the row-distance
// magnitude.
func rowDiffPenalty(prev, cur Slot) float64 {
	mult := 1.0
	if prev.Hand() == Left {
		mult *= DecLowBigram
	}
	switch rowDistance(prev, cur) {
	case 1:
		mult *= DecLowBigram
	case 2:
		mult *= DecMediumBigram
	case 3:
		mult *= DecHighBigram
	}
	return mult
}

// comboMultiplier classifies which finger struck the physically upper row
// (closer to the number row) and which struck the lower one. A lower-row
// index, an upper-row middle finger, or an upper-ring/lower-pinky pairing
// is a favorable inward/outward combo.
func comboMultiplier(prev, cur Slot) float64 {
	upper, lower := prev, cur
	if cur.Row() < prev.Row() {
		upper, lower = cur, prev
	}
	uf, lf := upper.Finger(), lower.Finger()
	if lf == Index || uf == Middle || (uf == Ring && lf == Pinky) {
		return IncLowBigram
	}
	return DecMediumBigram
}

// scissorMultiplier penalizes adjacent-column, different-row bigrams,
// which force the hand to pivot at the wrist. Only triggers for larger row
// gaps (2 or 3); the right hand pivots more comfortably than the left.
func scissorMultiplier(prev, cur Slot) float64 {
	if colDistance(prev, cur) != 1 {
		return 1.0
	}
	switch {
	case rowDistance(prev, cur) == 2 && cur.Hand() == Right:
		return DecMediumBigram
	case rowDistance(prev, cur) == 3 && cur.Hand() == Right:
		return DecHighBigram
	case rowDistance(prev, cur) == 2 && cur.Hand() == Left:
		return DecHighBigram
	case rowDistance(prev, cur) == 3 && cur.Hand() == Left:
		return DecBrutalBigram
	default:
		return 1.0
	}
}

// sameRowRollMultiplier is the same-row roll check (spec §4.2 item 6): a
// same-hand, same-row, different-finger bigram that moves toward the
// hand's center is a favorable roll.
func sameRowRollMultiplier(prev, cur Slot) float64 {
	if cur.CenterDist() < prev.CenterDist() {
		return IncLowBigram
	}
	return 1.0
}

func colDistance(a, b Slot) int {
	ac, bc := int(a.Col()), int(b.Col())
	if ac > bc {
		return ac - bc
	}
	return bc - ac
}

func rowDistance(a, b Slot) int {
	ar, br := int(a.Row()), int(b.Row())
	if ar > br {
		return ar - br
	}
	return br - ar
}
