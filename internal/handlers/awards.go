// awards.go — GET /api/v1/rounds/:id/awards
// The shareable end-of-round summary: best and worst holes, birdie/bogey
// tallies, holes-in-one, the hardest and easiest hole of the day, the margin
// of victory, and the no-paso-rojas forfeit count.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/javierlh/golf-rounds/internal/models"
	"github.com/javierlh/golf-rounds/internal/scoring"
	"gorm.io/gorm"
)

// GetAwards returns the handler for GET /api/v1/rounds/:id/awards.
//
// The derivation is pure, so the summary can be requested as many times as
// people want to share it — it is recomputed identically from the stored
// scores on every call, nothing is cached or mutated. It is available on any
// round, but only completed rounds have a stable summary worth sharing; the
// response carries the round status so clients can caption accordingly.
func GetAwards(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}
		round, err := loadRound(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}

		holes, err := activeHoles(round.Tee, round.NumHoles)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		standings, err := standingsFor(db, round)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute standings"})
		}

		// Pull every score of the round and hand the whole set to the engine.
		playerIDs := make([]uuid.UUID, 0, len(round.Players))
		for _, rp := range round.Players {
			playerIDs = append(playerIDs, rp.ID)
		}
		var scores []models.Score
		if len(playerIDs) > 0 {
			if err := db.Where("round_player_id IN ?", playerIDs).Find(&scores).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load scores"})
			}
		}
		entries := make([]scoring.Entry, 0, len(scores))
		for _, s := range scores {
			entries = append(entries, scoring.Entry{
				PlayerID:         s.RoundPlayerID.String(),
				HoleNumber:       s.HoleNumber,
				GrossStrokes:     s.GrossStrokes,
				NetStrokes:       s.NetStrokes,
				StablefordPoints: s.StablefordPoints,
				NoPasoRojas:      s.NoPasoRojas,
				Abandoned:        s.Abandoned,
			})
		}

		awards := scoring.DeriveAwards(standings, entries, holes)
		return c.JSON(fiber.Map{
			"round_id": round.ID.String(),
			"status":   string(round.Status),
			"awards":   awards,
		})
	}
}
