// Package scoring is the pure computation core of the app: handicap math,
// per-hole score derivation, Stableford points, leaderboard ranking, the
// post-round handicap adjustment, and award derivation.
//
// Everything in this package is a deterministic function of its inputs — no
// database access, no clocks, no globals. That keeps the golf rules testable
// in isolation and means any call may run concurrently without coordination.
// The HTTP handlers translate between the GORM models and the small value
// types defined here at the boundary, validating as they go.
package scoring

import "errors"

// Sentinel errors returned by the engine. Handlers match on these with
// errors.Is to choose an HTTP status.
var (
	// ErrSlopeOutOfRange is returned when a slope rating falls outside the
	// valid USGA range of 55–155. Callers are expected to validate slope
	// before calling in, but the check is repeated here because the
	// functions are exported and a bad slope silently corrupts every
	// handicap derived from it.
	ErrSlopeOutOfRange = errors.New("scoring: slope rating must be between 55 and 155")

	// ErrInvalidGross is returned for gross strokes below 1. A player cannot
	// finish a hole in zero strokes; zero is reserved by the API layer to
	// mean "delete this score".
	ErrInvalidGross = errors.New("scoring: gross strokes must be at least 1")

	// ErrInvalidHoleSet is returned when the round's holes do not carry a
	// valid stroke-index permutation (duplicate or out-of-range index, or an
	// empty set). Stroke allocation is ill-defined on such a set, so we fail
	// loudly instead of guessing.
	ErrInvalidHoleSet = errors.New("scoring: stroke indexes must be a permutation of 1..N")

	// ErrHoleNotInSet is returned when a score references a hole number that
	// is not part of the round's active hole set.
	ErrHoleNotInSet = errors.New("scoring: hole is not part of the round's hole set")

	// ErrInvalidPar is returned for a par outside the real-world 3..5 range.
	ErrInvalidPar = errors.New("scoring: par must be between 3 and 5")
)

// Hole is the engine's view of one hole: just the fields the math needs.
// StrokeIndex ranks holes by difficulty (1 = hardest); within a round's hole
// set the indexes must form a permutation of 1..N.
type Hole struct {
	Number      int
	Par         int
	StrokeIndex int
}

// HoleResult is the derived outcome of one player's play on one hole.
type HoleResult struct {
	StrokesReceived  int // Handicap strokes allocated to this hole (negative = gives a stroke back)
	NetStrokes       int // Gross minus StrokesReceived
	StablefordPoints int // max(0, par − net + 2)
}

// Standing is one row of a leaderboard: a player with their summed Stableford
// points for the round. The same Standing slice feeds the live leaderboard,
// the post-round handicap adjustment, and the archived ranking, so all three
// are guaranteed to agree on the order.
type Standing struct {
	PlayerID        string
	Name            string
	TotalPoints     int
	PlayingHandicap int
	ExactHandicap   float64
}

// Entry is the engine's view of one recorded score, used by award derivation.
// Abandoned entries may carry a placeholder gross but are excluded from all
// numeric aggregates.
type Entry struct {
	PlayerID         string
	HoleNumber       int
	GrossStrokes     int
	NetStrokes       int
	StablefordPoints int
	NoPasoRojas      bool
	Abandoned        bool
}
