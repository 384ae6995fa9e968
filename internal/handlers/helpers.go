// Package handlers contains HTTP route handler functions for the Golf Rounds API.
// This file holds the glue shared by the round/score/award handlers: reading
// the authenticated user, loading a round's active hole set, and translating
// between the GORM models and the scoring engine's value types.
//
// The translation layer is deliberate: the engine (internal/scoring) only sees
// small plain structs, validated here at the boundary, so the golf math never
// depends on GORM, UUIDs, or HTTP.
package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/javierlh/golf-rounds/internal/models"
	"github.com/javierlh/golf-rounds/internal/scoring"
	"gorm.io/gorm"
)

// currentUser reads the authenticated user's internal UUID and role from the
// request context (set by the Auth middleware).
func currentUser(c *fiber.Ctx) (uuid.UUID, string, error) {
	idStr, _ := c.Locals("userID").(string)
	role, _ := c.Locals("userRole").(string)
	id, err := uuid.Parse(idStr)
	return id, role, err
}

// loadRound fetches a round with its course, tee (including holes) and active
// players preloaded. Returns gorm.ErrRecordNotFound if the ID doesn't exist.
func loadRound(db *gorm.DB, roundID uuid.UUID) (models.Round, error) {
	var round models.Round
	err := db.
		Preload("Creator").
		Preload("Course").
		Preload("Tee").
		Preload("Tee.Holes").
		Preload("Players", "status = ?", models.RoundPlayerStatusActive).
		First(&round, "id = ?", roundID).Error
	return round, err
}

// activeHoles converts a round's tee holes into the engine's hole set: the
// first NumHoles holes by hole number, with stroke indexes re-ranked to a
// permutation of 1..NumHoles.
//
// The re-ranking matters when a 9-hole round is played on an 18-hole course:
// the front nine might carry stroke indexes like 1,3,5,...,17, which is not a
// valid permutation over nine holes. Relative difficulty order is what the
// allocation needs, so we keep the order and compress the indexes. On a course
// whose indexes already form a permutation of 1..N this is the identity.
func activeHoles(tee models.Tee, numHoles int) ([]scoring.Hole, error) {
	subset := make([]models.Hole, 0, numHoles)
	for _, h := range tee.Holes {
		if h.HoleNumber >= 1 && h.HoleNumber <= numHoles {
			subset = append(subset, h)
		}
	}
	if len(subset) != numHoles {
		return nil, scoring.ErrInvalidHoleSet
	}

	// Duplicate course indexes would make the re-ranking below arbitrary, so
	// they are rejected here — compressing them first would mask the bad data.
	seen := make(map[int]bool, numHoles)
	for _, h := range subset {
		if seen[h.StrokeIndex] {
			return nil, scoring.ErrInvalidHoleSet
		}
		seen[h.StrokeIndex] = true
	}

	// Rank by the course's stroke index.
	sort.SliceStable(subset, func(i, j int) bool { return subset[i].StrokeIndex < subset[j].StrokeIndex })

	holes := make([]scoring.Hole, numHoles)
	for rank, h := range subset {
		holes[rank] = scoring.Hole{Number: h.HoleNumber, Par: h.Par, StrokeIndex: rank + 1}
	}

	if err := scoring.ValidateHoleSet(holes); err != nil {
		return nil, err
	}
	return holes, nil
}

// coursePar sums the par of the active hole set.
func coursePar(holes []scoring.Hole) int {
	total := 0
	for _, h := range holes {
		total += h.Par
	}
	return total
}

// holeByNumber finds one hole of the active set. Second return is false when
// the number isn't part of the set.
func holeByNumber(holes []scoring.Hole, number int) (scoring.Hole, bool) {
	for _, h := range holes {
		if h.Number == number {
			return h, true
		}
	}
	return scoring.Hole{}, false
}

// playingHandicapFor derives a player's playing handicap for the round's
// current configuration. Exact handicaps are stored on a 9-hole basis, so an
// 18-hole round doubles the exact value before the slope/rounding step.
func playingHandicapFor(exactHandicap float64, round models.Round) (int, error) {
	exact := exactHandicap
	if round.NumHoles == 18 {
		exact *= 2
	}
	return scoring.ComputePlayingHandicap(exact, round.Slope, round.UseSlope)
}

// standingsFor builds the engine's Standing rows for a round: each active
// player with their summed Stableford points over non-abandoned holes.
// Players are ordered by join time (CreatedAt, then ID) before ranking so
// full ties resolve the same way on every call.
func standingsFor(db *gorm.DB, round models.Round) ([]scoring.Standing, error) {
	players := make([]models.RoundPlayer, len(round.Players))
	copy(players, round.Players)
	sort.SliceStable(players, func(i, j int) bool {
		if !players[i].CreatedAt.Equal(players[j].CreatedAt) {
			return players[i].CreatedAt.Before(players[j].CreatedAt)
		}
		return players[i].ID.String() < players[j].ID.String()
	})

	standings := make([]scoring.Standing, 0, len(players))
	for _, rp := range players {
		var total int64
		err := db.Model(&models.Score{}).
			Where("round_player_id = ? AND abandoned = false", rp.ID).
			Select("COALESCE(SUM(stableford_points), 0)").
			Scan(&total).Error
		if err != nil {
			return nil, err
		}
		standings = append(standings, scoring.Standing{
			PlayerID:        rp.ID.String(),
			Name:            rp.Name,
			TotalPoints:     int(total),
			PlayingHandicap: rp.PlayingHandicap,
			ExactHandicap:   rp.ExactHandicap,
		})
	}
	return standings, nil
}
