// profiles.go — persistent player profiles:
// GET  /api/v1/players  (list)
// POST /api/v1/players  (create)
//
// A profile is what makes handicaps persistent: round players linked to a
// profile get their exact handicap from it when they join a round, and the
// post-round adjustment writes the new value back to it.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/javierlh/golf-rounds/internal/models"
	"gorm.io/gorm"
)

// PlayerProfileResponse is the API representation of a profile.
type PlayerProfileResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ExactHandicap float64 `json:"exact_handicap"` // 9-hole basis
}

// CreatePlayerRequest is the JSON body for POST /api/v1/players.
type CreatePlayerRequest struct {
	Name          string  `json:"name"`
	ExactHandicap float64 `json:"exact_handicap"` // 9-hole basis; negative allowed for plus players
	LinkToMe      bool    `json:"link_to_me"`     // Attach this profile to the calling account
}

// ListPlayers returns a handler for GET /api/v1/players.
func ListPlayers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var players []models.Player
		if err := db.Order("name").Find(&players).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch players"})
		}
		response := make([]PlayerProfileResponse, 0, len(players))
		for _, p := range players {
			response = append(response, PlayerProfileResponse{
				ID:            p.ID.String(),
				Name:          p.Name,
				ExactHandicap: p.ExactHandicap,
			})
		}
		return c.JSON(response)
	}
}

// CreatePlayer returns a handler for POST /api/v1/players.
func CreatePlayer(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		var req CreatePlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}

		var linkedUser *uuid.UUID
		if req.LinkToMe {
			linkedUser = &userID
		}
		player := models.Player{
			UserID:        linkedUser,
			Name:          req.Name,
			ExactHandicap: req.ExactHandicap,
		}
		if err := db.Create(&player).Error; err != nil {
			// The unique index on user_id catches a second "link_to_me".
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "failed to create player (already linked?)"})
		}
		return c.Status(fiber.StatusCreated).JSON(PlayerProfileResponse{
			ID:            player.ID.String(),
			Name:          player.Name,
			ExactHandicap: player.ExactHandicap,
		})
	}
}
