package scoring

// ComputeScore derives the stored outcome of one hole from its raw inputs:
// gross strokes, the player's playing handicap, and the hole's place within
// the full set of holes being played.
//
// Steps:
//  1. Look up this hole's share of the handicap allocation (see AllocateStrokes).
//  2. Net strokes = gross − strokes received.
//  3. Stableford points = max(0, par − net + 2): net par scores 2, each stroke
//     better adds 1 with no ceiling (a net albatross on a par 5 is worth 5),
//     each stroke worse subtracts 1, floored at 0 at net double bogey.
//
// The result is recomputed from scratch every time a score is recorded or the
// round is reconfigured — derived values are never patched incrementally, so
// they can never drift from their inputs.
func ComputeScore(grossStrokes, playingHandicap int, hole Hole, holes []Hole) (HoleResult, error) {
	if grossStrokes < 1 {
		return HoleResult{}, ErrInvalidGross
	}
	received, err := StrokesReceived(playingHandicap, hole.Number, holes)
	if err != nil {
		return HoleResult{}, err
	}
	net := grossStrokes - received
	return HoleResult{
		StrokesReceived:  received,
		NetStrokes:       net,
		StablefordPoints: stablefordPoints(hole.Par, net),
	}, nil
}

// stablefordPoints implements the standard Stableford table relative to par:
//
//	net double bogey or worse  → 0
//	net bogey                  → 1
//	net par                    → 2
//	net birdie                 → 3
//	net eagle                  → 4  (and so on, one point per stroke, no cap)
func stablefordPoints(par, netStrokes int) int {
	points := par - netStrokes + 2
	if points < 0 {
		return 0
	}
	return points
}
