package scoring

import "sort"

// RankPlayers orders standings for display and for the post-round handicap
// adjustment: total Stableford points descending, then playing handicap
// ascending on a points tie (the lower handicap played "truer" golf for the
// same points, so they rank higher). Remaining ties keep their input order —
// sort.SliceStable makes the full ordering deterministic.
//
// This is the ONLY ranking comparator in the app. The live leaderboard, the
// handicap adjustment, and the archived standings all call this same function;
// if they sorted independently a points tie could rank differently in each
// place and the adjustment would punish the wrong player.
//
// An empty or nil input returns an empty slice — "no players yet" is a normal
// state while a round is being set up, not an error.
func RankPlayers(players []Standing) []Standing {
	ranked := make([]Standing, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalPoints != ranked[j].TotalPoints {
			return ranked[i].TotalPoints > ranked[j].TotalPoints
		}
		return ranked[i].PlayingHandicap < ranked[j].PlayingHandicap
	})
	return ranked
}
