package scoring

// ValidateHoleSet checks the invariant the allocation math depends on: the
// round's holes carry stroke indexes forming a permutation of 1..N, pars are
// in the real-world 3..5 range, and hole numbers are unique.
//
// A broken permutation (duplicate or missing stroke index) makes "the k
// hardest holes" ambiguous, so this fails loudly rather than letting the
// allocation guess.
func ValidateHoleSet(holes []Hole) error {
	n := len(holes)
	if n == 0 {
		return ErrInvalidHoleSet
	}
	seenIndex := make([]bool, n+1) // 1-based; seenIndex[0] unused
	seenNumber := make(map[int]bool, n)
	for _, h := range holes {
		if h.StrokeIndex < 1 || h.StrokeIndex > n || seenIndex[h.StrokeIndex] {
			return ErrInvalidHoleSet
		}
		seenIndex[h.StrokeIndex] = true
		if h.Par < 3 || h.Par > 5 {
			return ErrInvalidPar
		}
		if seenNumber[h.Number] {
			return ErrInvalidHoleSet
		}
		seenNumber[h.Number] = true
	}
	return nil
}

// AllocateStrokes distributes a playing handicap across the round's holes by
// stroke index and returns the per-hole allocation keyed by hole number.
//
// Positive handicap: every hole receives floor(ph/N) strokes, and the ph mod N
// holes with the LOWEST stroke indexes (the hardest holes) each receive one
// more. A playing handicap of 11 over 9 holes therefore gives every hole 1
// stroke and the two hardest (stroke index 1 and 2) a second one.
//
// Negative handicap (plus-handicap player): the mirror image. Every hole gives
// back floor(|ph|/N) strokes, and the |ph| mod N holes with the HIGHEST stroke
// indexes (the easiest holes) give back one more. Easiest-first is the
// standard convention for plus players — the reversal point is pinned by tests
// because getting it backwards is an easy off-by-one to ship.
//
// Either way the allocation conserves the handicap exactly:
// the per-hole values always sum to playingHandicap.
func AllocateStrokes(playingHandicap int, holes []Hole) (map[int]int, error) {
	if err := ValidateHoleSet(holes); err != nil {
		return nil, err
	}
	n := len(holes)
	alloc := make(map[int]int, n)

	if playingHandicap >= 0 {
		base := playingHandicap / n
		extra := playingHandicap % n
		for _, h := range holes {
			strokes := base
			if h.StrokeIndex <= extra {
				strokes++ // hardest holes get the remainder first
			}
			alloc[h.Number] = strokes
		}
		return alloc, nil
	}

	// Negative: give strokes back, easiest holes first.
	given := -playingHandicap
	base := given / n
	extra := given % n
	for _, h := range holes {
		strokes := -base
		if h.StrokeIndex > n-extra {
			strokes-- // easiest holes give up the remainder first
		}
		alloc[h.Number] = strokes
	}
	return alloc, nil
}

// StrokesReceived returns the handicap strokes allocated to a single hole of
// the round. The full hole set is required because the allocation depends on
// the hole's stroke-index rank among every hole actually being played, not on
// the hole in isolation.
func StrokesReceived(playingHandicap int, holeNumber int, holes []Hole) (int, error) {
	alloc, err := AllocateStrokes(playingHandicap, holes)
	if err != nil {
		return 0, err
	}
	strokes, ok := alloc[holeNumber]
	if !ok {
		return 0, ErrHoleNotInSet
	}
	return strokes, nil
}
