// players.go — handlers for the players within a round:
// POST   /api/v1/rounds/:id/players           (add a player or guest)
// DELETE /api/v1/rounds/:id/players/:playerID (withdraw; scores go with them)
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/javierlh/golf-rounds/internal/models"
	"gorm.io/gorm"
)

// AddRoundPlayerRequest is the JSON body for adding a player to a round.
// Either link an existing profile (player_id) — name and handicap come from
// it — or provide name + exact_handicap directly for a guest.
type AddRoundPlayerRequest struct {
	PlayerID      *string  `json:"player_id"`      // Optional: UUID of a persistent Player profile
	Name          *string  `json:"name"`           // Required for guests; overrides the profile name if both given
	ExactHandicap *float64 `json:"exact_handicap"` // 9-hole basis; required for guests, defaults to the profile's value
}

// AddRoundPlayer returns a handler for POST /api/v1/rounds/:id/players.
// The playing handicap is derived immediately from the round's current
// configuration, so the new player is scoreable right away.
func AddRoundPlayer(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userRole, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}

		var req AddRoundPlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		round, err := loadRound(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		if !canManageRound(round, userID, userRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized to manage this round"})
		}
		if round.Status == models.RoundStatusCompleted {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "completed rounds cannot change players"})
		}

		// Resolve name + exact handicap, from the profile or the request.
		var profileID *uuid.UUID
		name := ""
		exact := 0.0
		if req.PlayerID != nil {
			pid, err := uuid.Parse(*req.PlayerID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid player_id"})
			}
			var profile models.Player
			if err := db.First(&profile, "id = ?", pid).Error; err != nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player profile not found"})
			}
			profileID = &pid
			name = profile.Name
			exact = profile.ExactHandicap
		}
		if req.Name != nil {
			name = *req.Name
		}
		if req.ExactHandicap != nil {
			exact = *req.ExactHandicap
		}
		if name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required for guests"})
		}

		ph, err := playingHandicapFor(exact, round)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}

		rp := models.RoundPlayer{
			RoundID:         roundID,
			PlayerID:        profileID,
			Name:            name,
			ExactHandicap:   exact,
			PlayingHandicap: ph,
			Status:          models.RoundPlayerStatusActive,
		}
		if err := db.Create(&rp).Error; err != nil {
			// The (round, player) unique index catches double-joins.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "player is already in this round"})
		}

		return c.Status(fiber.StatusCreated).JSON(RoundPlayerResponse{
			ID:              rp.ID.String(),
			Name:            rp.Name,
			ExactHandicap:   rp.ExactHandicap,
			PlayingHandicap: rp.PlayingHandicap,
		})
	}
}

// RemoveRoundPlayer returns a handler for DELETE /api/v1/rounds/:id/players/:playerID.
// Withdrawing a player removes their score rows in the same transaction —
// orphaned scores would poison the leaderboard and award aggregates.
func RemoveRoundPlayer(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userRole, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}
		rpID, err := uuid.Parse(c.Params("playerID"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid player ID"})
		}

		round, err := loadRound(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		if !canManageRound(round, userID, userRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized to manage this round"})
		}
		if round.Status == models.RoundStatusCompleted {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "completed rounds cannot change players"})
		}

		var rp models.RoundPlayer
		if err := db.First(&rp, "id = ? AND round_id = ?", rpID, roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not in this round"})
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.Score{}, "round_player_id = ?", rp.ID).Error; err != nil {
				return err
			}
			return tx.Delete(&rp).Error
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to remove player"})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
