package scoring

import "fmt"

// ScoreToPar is a player's total for a round measured against their personal
// par: the course par plus their playing handicap. Value is the signed
// difference; Display is the scoreboard string ("E", "+3", "-2", or "-" when
// the round is not comparable).
type ScoreToPar struct {
	Value   int
	Display string
}

// ScoreToParIncomplete is the sentinel returned when a card cannot be compared
// against par — any abandoned hole, or fewer cards than holes played, would
// make the number a lie, so we show a dash instead of a misleading total.
var ScoreToParIncomplete = ScoreToPar{Value: 0, Display: "-"}

// ComputeScoreToPar computes a player's round total relative to their personal
// par baseline (course par + playing handicap). A scratch-equivalent round
// displays as "E", strokes over as "+N", strokes under as "-N".
//
// holesScored is the number of non-abandoned cards the player actually has;
// anyAbandoned reports whether any of their holes were abandoned. If the card
// is incomplete either way, the incomplete sentinel is returned — partial
// rounds are not comparable and a partial number would read as a great score.
func ComputeScoreToPar(totalGross, coursePar, playingHandicap, holesScored, numHoles int, anyAbandoned bool) ScoreToPar {
	if anyAbandoned || holesScored < numHoles || totalGross <= 0 {
		return ScoreToParIncomplete
	}
	value := totalGross - (coursePar + playingHandicap)
	return ScoreToPar{Value: value, Display: formatToPar(value)}
}

// formatToPar renders a to-par value the way scoreboards do: "E" for even,
// an explicit "+" for over, and the usual minus sign for under.
func formatToPar(value int) string {
	switch {
	case value == 0:
		return "E"
	case value > 0:
		return fmt.Sprintf("+%d", value)
	default:
		return fmt.Sprintf("%d", value)
	}
}
