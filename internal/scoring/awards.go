package scoring

import "sort"

// ScoreClass buckets a single hole's net result against par.
type ScoreClass string

const (
	ClassEagle         ScoreClass = "eagle"  // net −2 or better
	ClassBirdie        ScoreClass = "birdie" // net −1
	ClassPar           ScoreClass = "par"    // net even
	ClassBogey         ScoreClass = "bogey"  // net +1
	ClassDoubleOrWorse ScoreClass = "double" // net +2 or worse
)

// Classify buckets one net score against the hole's par. This is the detailed
// classification used by per-hole displays; the round-summary tallies in
// DeriveAwards fold eagles into the birdie count on purpose, because the
// summary only cares about "under par" vs "level" vs "over".
func Classify(netStrokes, par int) ScoreClass {
	switch diff := netStrokes - par; {
	case diff <= -2:
		return ClassEagle
	case diff == -1:
		return ClassBirdie
	case diff == 0:
		return ClassPar
	case diff == 1:
		return ClassBogey
	default:
		return ClassDoubleOrWorse
	}
}

// HoleHighlight marks a player's single best or worst hole of the round.
type HoleHighlight struct {
	HoleNumber       int `json:"hole_number"`
	StablefordPoints int `json:"stableford_points"`
}

// PlayerAwards collects one player's superlatives and tallies for the round.
// Counts only include non-abandoned holes.
type PlayerAwards struct {
	PlayerID       string         `json:"player_id"`
	Name           string         `json:"name"`
	BestHole       *HoleHighlight `json:"best_hole"`        // Highest Stableford; tie → lowest hole number; nil if no clean holes
	WorstHole      *HoleHighlight `json:"worst_hole"`       // Lowest Stableford; tie → lowest hole number; nil if no clean holes
	Birdies        int            `json:"birdies"`          // Net under par (eagles folded in — see Classify)
	Pars           int            `json:"pars"`             // Net level par
	Bogeys         int            `json:"bogeys"`           // Net one over
	DoublesOrWorse int            `json:"doubles_or_worse"` // Net two or more over
	HolesInOne     int            `json:"holes_in_one"`     // Gross 1s, the real kind — no handicap involved
	NoPasoRojas    int            `json:"no_paso_rojas"`    // Social forfeit tally
}

// HoleDifficulty reports how a hole played across the whole field, measured by
// mean Stableford points over every non-abandoned entry on it.
type HoleDifficulty struct {
	HoleNumber     int     `json:"hole_number"`
	MeanStableford float64 `json:"mean_stableford"`
}

// Margin is the winner's points cushion over the last-placed player
// ("la paliza" — the thrashing). Only reported when the field has at least two
// players and the margin is positive.
type Margin struct {
	WinnerID     string `json:"winner_id"`
	WinnerName   string `json:"winner_name"`
	LastPlaceID  string `json:"last_place_id"`
	LastName     string `json:"last_place_name"`
	PointsMargin int    `json:"points_margin"`
}

// Awards is the shareable end-of-round summary.
type Awards struct {
	Players     []PlayerAwards  `json:"players"`
	HardestHole *HoleDifficulty `json:"hardest_hole"` // Lowest mean Stableford; nil if no clean entries
	EasiestHole *HoleDifficulty `json:"easiest_hole"` // Highest mean Stableford; nil if no clean entries
	Paliza      *Margin         `json:"la_paliza"`    // nil when the field is too small or level
}

// DeriveAwards scans a completed round's full score set and derives the
// superlative statistics for the share screen. It is a pure function:
// the same inputs always produce the identical summary, so it can be re-run
// at any time (or on every view) without side effects.
//
// Abandoned entries are excluded from every numeric aggregate. Degenerate
// inputs — no players, no scores, everything abandoned — produce empty
// tallies and nil highlights rather than errors, because an empty round is a
// normal state, not a failure.
func DeriveAwards(players []Standing, entries []Entry, holes []Hole) Awards {
	parByHole := make(map[int]int, len(holes))
	for _, h := range holes {
		parByHole[h.Number] = h.Par
	}

	// Per-player tallies, in the callers' player order for determinism.
	byPlayer := make(map[string][]Entry, len(players))
	for _, e := range entries {
		if e.Abandoned {
			// Abandoned holes still count their social forfeits below, but
			// nothing numeric.
			continue
		}
		byPlayer[e.PlayerID] = append(byPlayer[e.PlayerID], e)
	}

	summary := Awards{Players: make([]PlayerAwards, 0, len(players))}
	for _, p := range players {
		pa := PlayerAwards{PlayerID: p.PlayerID, Name: p.Name}

		// No-paso-rojas forfeits count even on abandoned holes: the flag
		// records something that happened, not a score.
		for _, e := range entries {
			if e.PlayerID == p.PlayerID && e.NoPasoRojas {
				pa.NoPasoRojas++
			}
		}

		clean := byPlayer[p.PlayerID]
		// Lowest hole number wins ties for best/worst, so scan in hole order.
		sort.Slice(clean, func(i, j int) bool { return clean[i].HoleNumber < clean[j].HoleNumber })
		for _, e := range clean {
			if pa.BestHole == nil || e.StablefordPoints > pa.BestHole.StablefordPoints {
				pa.BestHole = &HoleHighlight{HoleNumber: e.HoleNumber, StablefordPoints: e.StablefordPoints}
			}
			if pa.WorstHole == nil || e.StablefordPoints < pa.WorstHole.StablefordPoints {
				pa.WorstHole = &HoleHighlight{HoleNumber: e.HoleNumber, StablefordPoints: e.StablefordPoints}
			}
			switch Classify(e.NetStrokes, parByHole[e.HoleNumber]) {
			case ClassEagle, ClassBirdie:
				pa.Birdies++
			case ClassPar:
				pa.Pars++
			case ClassBogey:
				pa.Bogeys++
			default:
				pa.DoublesOrWorse++
			}
			if e.GrossStrokes == 1 {
				pa.HolesInOne++
			}
		}
		summary.Players = append(summary.Players, pa)
	}

	summary.HardestHole, summary.EasiestHole = holeDifficulty(entries, holes)
	summary.Paliza = marginOfVictory(players)
	return summary
}

// holeDifficulty computes the field's mean Stableford points per hole and
// picks the extremes: hardest = lowest mean, easiest = highest mean. Ties go
// to the lower hole number because holes are scanned in course order.
func holeDifficulty(entries []Entry, holes []Hole) (hardest, easiest *HoleDifficulty) {
	sums := make(map[int]int, len(holes))
	counts := make(map[int]int, len(holes))
	for _, e := range entries {
		if e.Abandoned {
			continue
		}
		sums[e.HoleNumber] += e.StablefordPoints
		counts[e.HoleNumber]++
	}

	ordered := make([]Hole, len(holes))
	copy(ordered, holes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	for _, h := range ordered {
		if counts[h.Number] == 0 {
			continue // nobody finished this hole; no basis for a mean
		}
		mean := float64(sums[h.Number]) / float64(counts[h.Number])
		if hardest == nil || mean < hardest.MeanStableford {
			hardest = &HoleDifficulty{HoleNumber: h.Number, MeanStableford: mean}
		}
		if easiest == nil || mean > easiest.MeanStableford {
			easiest = &HoleDifficulty{HoleNumber: h.Number, MeanStableford: mean}
		}
	}
	return hardest, easiest
}

// marginOfVictory ranks the field with the shared comparator and reports the
// winner's cushion over last place. nil when there's no field to speak of or
// the two ends are level.
func marginOfVictory(players []Standing) *Margin {
	if len(players) < 2 {
		return nil
	}
	ranked := RankPlayers(players)
	winner, last := ranked[0], ranked[len(ranked)-1]
	margin := winner.TotalPoints - last.TotalPoints
	if margin <= 0 {
		return nil
	}
	return &Margin{
		WinnerID:     winner.PlayerID,
		WinnerName:   winner.Name,
		LastPlaceID:  last.PlayerID,
		LastName:     last.Name,
		PointsMargin: margin,
	}
}
