package scoring

import "math"

// NeutralSlope is the USGA slope rating of a course of standard difficulty.
// Dividing by it makes the slope adjustment a no-op on a neutral course, and
// it doubles as the effective slope whenever slope play is disabled.
const NeutralSlope = 113

// Valid bounds for a USGA slope rating.
const (
	MinSlope = 55
	MaxSlope = 155
)

// ComputePlayingHandicap converts an exact handicap into the whole number of
// strokes the player receives for one specific round configuration.
//
// The exact handicap must already be scaled to the round's hole count — this
// app stores exact handicaps on a 9-hole basis, so callers double it for an
// 18-hole round before calling in (see handlers.playingHandicapFor).
//
// With slope play off, the playing handicap is simply the exact handicap
// rounded. With slope play on, it is scaled by slope/113 first, so a harder
// course (slope > 113) grants more strokes and an easier one fewer.
//
// Rounding is half away from zero (math.Round): 7.5 → 8, -7.5 → -8. Tests pin
// these boundaries because a different tie rule would silently shift playing
// handicaps by a stroke.
//
// Negative exact handicaps (plus-handicap players) pass through unchanged in
// kind: the result is a negative playing handicap, which the allocation logic
// treats as strokes given back rather than received.
func ComputePlayingHandicap(exactHandicap float64, slope int, useSlope bool) (int, error) {
	if !useSlope {
		return int(math.Round(exactHandicap)), nil
	}
	if slope < MinSlope || slope > MaxSlope {
		return 0, ErrSlopeOutOfRange
	}
	return int(math.Round(exactHandicap * float64(slope) / NeutralSlope)), nil
}
