package scoring

// HandicapCeiling is the exact-handicap value at or above which the post-round
// adjustment stops increasing a player's handicap. Without it a string of bad
// rounds would inflate handicaps without bound and turn Stableford into a
// lottery. There is deliberately no symmetric floor: a player on a winning
// streak can keep dropping, through scratch and into plus handicaps.
const HandicapCeiling = 12

// AdjustHandicaps applies the post-round median-split adjustment and returns
// the new exact handicap for each player, in the same order as the input.
//
// The input MUST already be ranked best-first by RankPlayers — the split is
// positional, so feeding an unranked slice adjusts the wrong players.
//
// Rule: the field is split at the middle index (n/2, 0-based).
//   - Odd field:  everyone strictly above the middle player improves by 1,
//     the middle player is untouched, everyone below worsens by 1.
//   - Even field: the top half improves by 1, the bottom half worsens by 1.
//
// Increases are gated by HandicapCeiling: a player already at or above 12
// stays where they are. Decreases have no floor.
//
// This function is intentionally NOT idempotent — calling it twice on the same
// ranking shifts every handicap twice. It mutates real player profiles, so the
// caller must guarantee exactly-once application per round; the handlers do
// this with a status compare-and-set on the round (active → completed) plus
// the HandicapsApplied flag, all inside one transaction.
func AdjustHandicaps(ranked []Standing) []float64 {
	n := len(ranked)
	adjusted := make([]float64, n)
	if n == 0 {
		return adjusted
	}
	middle := n / 2
	for i, p := range ranked {
		switch {
		case i < middle:
			adjusted[i] = p.ExactHandicap - 1
		case i == middle && n%2 == 1:
			// The median player of an odd field holds steady.
			adjusted[i] = p.ExactHandicap
		default:
			if p.ExactHandicap < HandicapCeiling {
				adjusted[i] = p.ExactHandicap + 1
			} else {
				adjusted[i] = p.ExactHandicap
			}
		}
	}
	return adjusted
}
