// Package handlers contains HTTP route handler functions for the Golf Rounds API.
// This file handles the /api/v1/rounds routes — creating rounds, reading them,
// reconfiguring them mid-play, and the one-way completion that applies the
// post-round handicap adjustment.
//
// Each exported function follows the "handler factory" pattern: it takes its
// dependencies (*gorm.DB, sometimes the websocket hub) and returns a
// fiber.Handler (a function that handles a single HTTP request). This lets us
// inject the database without using global variables.
//
// --- Permission model ---
// Two layers of access control are used:
//
//  1. Route-level (middleware.RequireRole): course data editing is admin-only.
//
//  2. Resource-level (canManageRound, defined below): controls who can modify
//     a specific round (reconfigure it, add/remove players, complete it).
//     - "admin" global role → can manage ANY round.
//     - everyone else → only rounds they created.
//
// Management rights are passed down as an explicit check per operation rather
// than some ambient "is admin" flag, so each handler states exactly what it
// requires.
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/javierlh/golf-rounds/internal/logging"
	"github.com/javierlh/golf-rounds/internal/models"
	"github.com/javierlh/golf-rounds/internal/scoring"
	"gorm.io/gorm"
)

// RoundPlayerResponse is one player row inside a round response.
type RoundPlayerResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ExactHandicap   float64 `json:"exact_handicap"`   // 9-hole basis
	PlayingHandicap int     `json:"playing_handicap"` // Derived for the round's current configuration
}

// RoundResponse is what we send back to the app for a round.
// We use a dedicated response struct (instead of the raw GORM model) so we control
// exactly what fields are serialised to JSON and can add computed fields.
type RoundResponse struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	CourseName       string                `json:"course_name"`
	TeeName          string                `json:"tee_name"`
	NumHoles         int                   `json:"num_holes"`
	UseSlope         bool                  `json:"use_slope"`
	Slope            int                   `json:"slope"`
	Status           string                `json:"status"`
	HandicapsApplied bool                  `json:"handicaps_applied"`
	ScheduledDate    string                `json:"scheduled_date"` // ISO 8601 date string
	CreatorName      string                `json:"creator_name"`
	Players          []RoundPlayerResponse `json:"players"`
	CreatedAt        string                `json:"created_at"` // ISO 8601 timestamp string
}

// CreateRoundRequest is the JSON body we expect on POST /api/v1/rounds.
type CreateRoundRequest struct {
	Name          string `json:"name"`           // Required: display name ("Saturday nine")
	CourseID      string `json:"course_id"`      // Required: UUID of the course
	TeeID         string `json:"tee_id"`         // Required: UUID of the tee set to play from
	NumHoles      int    `json:"num_holes"`      // Required: 9 or 18
	UseSlope      bool   `json:"use_slope"`      // Whether playing handicaps are slope-adjusted
	Slope         *int   `json:"slope"`          // Optional override; defaults to the tee's slope rating
	ScheduledDate string `json:"scheduled_date"` // Required: "YYYY-MM-DD"
}

func roundResponse(round models.Round) RoundResponse {
	players := make([]RoundPlayerResponse, 0, len(round.Players))
	for _, rp := range round.Players {
		players = append(players, RoundPlayerResponse{
			ID:              rp.ID.String(),
			Name:            rp.Name,
			ExactHandicap:   rp.ExactHandicap,
			PlayingHandicap: rp.PlayingHandicap,
		})
	}
	return RoundResponse{
		ID:               round.ID.String(),
		Name:             round.Name,
		CourseName:       round.Course.Name,
		TeeName:          round.Tee.Name,
		NumHoles:         round.NumHoles,
		UseSlope:         round.UseSlope,
		Slope:            round.Slope,
		Status:           string(round.Status),
		HandicapsApplied: round.HandicapsApplied,
		ScheduledDate:    round.ScheduledDate.UTC().Format("2006-01-02"),
		CreatorName:      round.Creator.DisplayName,
		Players:          players,
		CreatedAt:        round.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// canManageRound reports whether a user may modify a specific round:
// global admins always can, everyone else only if they created it.
func canManageRound(round models.Round, userID uuid.UUID, userRole string) bool {
	return userRole == string(models.UserRoleAdmin) || round.CreatedBy == userID
}

// CreateRound returns a handler for POST /api/v1/rounds.
// Any authenticated user can create a round; the creator becomes its manager.
func CreateRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}

		var req CreateRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		if req.NumHoles != 9 && req.NumHoles != 18 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "num_holes must be 9 or 18"})
		}
		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid course_id"})
		}
		teeID, err := uuid.Parse(req.TeeID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tee_id"})
		}
		scheduled, err := time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "scheduled_date must be in YYYY-MM-DD format"})
		}

		// Load the tee (with its holes) to validate it belongs to the course,
		// has enough holes, and carries a usable stroke-index set.
		var tee models.Tee
		if err := db.Preload("Holes").First(&tee, "id = ?", teeID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tee not found"})
		}
		if tee.CourseID != courseID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tee does not belong to course"})
		}
		if _, err := activeHoles(tee, req.NumHoles); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}

		// Effective slope: an explicit override wins, otherwise the tee's
		// rating, otherwise neutral. Out-of-range slopes are rejected here at
		// the boundary — the engine assumes a pre-validated value.
		slope := tee.SlopeRating
		if req.Slope != nil {
			slope = *req.Slope
		}
		if slope == 0 {
			slope = scoring.NeutralSlope
		}
		if slope < scoring.MinSlope || slope > scoring.MaxSlope {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "slope must be between 55 and 155"})
		}

		round := models.Round{
			Name:          req.Name,
			CourseID:      courseID,
			TeeID:         teeID,
			NumHoles:      req.NumHoles,
			UseSlope:      req.UseSlope,
			Slope:         slope,
			Status:        models.RoundStatusScheduled,
			ScheduledDate: scheduled,
			CreatedBy:     userID,
		}
		if err := db.Create(&round).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create round"})
		}

		created, err := loadRound(db, round.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load round"})
		}
		logging.Log.WithField("round_id", round.ID).Info("round created")
		return c.Status(fiber.StatusCreated).JSON(roundResponse(created))
	}
}

// GetRound returns a handler for GET /api/v1/rounds/:id.
func GetRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}
		round, err := loadRound(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		return c.JSON(roundResponse(round))
	}
}

// StartRound returns a handler for POST /api/v1/rounds/:id/start.
// Transitions scheduled → active. Score entry is only accepted on active rounds.
func StartRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userRole, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}
		round, err := loadRound(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		if !canManageRound(round, userID, userRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized to manage this round"})
		}

		// Guarded UPDATE: only a scheduled round can start. RowsAffected
		// tells us whether the transition actually happened.
		res := db.Model(&models.Round{}).
			Where("id = ? AND status = ?", roundID, models.RoundStatusScheduled).
			Update("status", models.RoundStatusActive)
		if res.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to start round"})
		}
		if res.RowsAffected == 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "round is not in scheduled state"})
		}
		return c.JSON(fiber.Map{"status": string(models.RoundStatusActive)})
	}
}

// ReconfigureRoundRequest is the JSON body for PATCH /api/v1/rounds/:id/config.
// All fields are optional pointers — only the ones present change.
type ReconfigureRoundRequest struct {
	NumHoles *int    `json:"num_holes"` // 9 or 18
	UseSlope *bool   `json:"use_slope"`
	Slope    *int    `json:"slope"`  // 55–155
	TeeID    *string `json:"tee_id"` // Must belong to the round's course
}

// ReconfigureRound returns a handler for PATCH /api/v1/rounds/:id/config.
//
// Changing the configuration invalidates every derived value in the round:
// playing handicaps depend on hole count and slope, and every stored score
// depends on the playing handicap and the hole set. So this handler recomputes
// EVERYTHING into an in-memory snapshot first, and only if every single
// recomputation succeeds does it write the snapshot inside one transaction.
// A failure anywhere leaves the round exactly as it was — there is no state
// where half the scores reflect the new configuration.
func ReconfigureRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userRole, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}

		var req ReconfigureRoundRequest
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
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "completed rounds cannot be reconfigured"})
		}

		// --- Apply the requested changes to an in-memory copy ---
		if req.NumHoles != nil {
			if *req.NumHoles != 9 && *req.NumHoles != 18 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "num_holes must be 9 or 18"})
			}
			round.NumHoles = *req.NumHoles
		}
		if req.UseSlope != nil {
			round.UseSlope = *req.UseSlope
		}
		if req.Slope != nil {
			if *req.Slope < scoring.MinSlope || *req.Slope > scoring.MaxSlope {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "slope must be between 55 and 155"})
			}
			round.Slope = *req.Slope
		}
		if req.TeeID != nil {
			teeID, err := uuid.Parse(*req.TeeID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tee_id"})
			}
			var tee models.Tee
			if err := db.Preload("Holes").First(&tee, "id = ?", teeID).Error; err != nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tee not found"})
			}
			if tee.CourseID != round.CourseID {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tee does not belong to course"})
			}
			round.TeeID = teeID
			round.Tee = tee
		}

		// --- Recompute the snapshot ---
		holes, err := activeHoles(round.Tee, round.NumHoles)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}

		// New playing handicap per player.
		newHandicaps := make(map[uuid.UUID]int, len(round.Players))
		for _, rp := range round.Players {
			ph, err := playingHandicapFor(rp.ExactHandicap, round)
			if err != nil {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
			}
			newHandicaps[rp.ID] = ph
		}

		// New derived values for every stored score. Scores on holes outside
		// the new set (an 18→9 shrink) are deleted — there is no honest value
		// to store for a hole that is no longer being played.
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

		type rescored struct {
			id     uuid.UUID
			result scoring.HoleResult
		}
		keep := make([]rescored, 0, len(scores))
		drop := make([]uuid.UUID, 0)
		for _, s := range scores {
			hole, ok := holeByNumber(holes, s.HoleNumber)
			if !ok {
				drop = append(drop, s.ID)
				continue
			}
			result, err := scoring.ComputeScore(s.GrossStrokes, newHandicaps[s.RoundPlayerID], hole, holes)
			if err != nil {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
			}
			keep = append(keep, rescored{id: s.ID, result: result})
		}

		// --- Swap the snapshot in, atomically ---
		// We use a database transaction so the configuration, the handicaps
		// and the scores change together or not at all.
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Round{}).Where("id = ?", round.ID).Updates(map[string]interface{}{
				"num_holes": round.NumHoles,
				"use_slope": round.UseSlope,
				"slope":     round.Slope,
				"tee_id":    round.TeeID,
			}).Error; err != nil {
				return err
			}
			for id, ph := range newHandicaps {
				if err := tx.Model(&models.RoundPlayer{}).Where("id = ?", id).
					Update("playing_handicap", ph).Error; err != nil {
					return err
				}
			}
			for _, r := range keep {
				if err := tx.Model(&models.Score{}).Where("id = ?", r.id).Updates(map[string]interface{}{
					"strokes_received":  r.result.StrokesReceived,
					"net_strokes":       r.result.NetStrokes,
					"stableford_points": r.result.StablefordPoints,
				}).Error; err != nil {
					return err
				}
			}
			if len(drop) > 0 {
				if err := tx.Delete(&models.Score{}, "id IN ?", drop).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to reconfigure round"})
		}

		logging.Log.WithField("round_id", round.ID).Info("round reconfigured")
		updated, err := loadRound(db, round.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load round"})
		}
		return c.JSON(roundResponse(updated))
	}
}

// completionResult is one line of the completion response: the player's final
// position and the handicap adjustment that was applied to them.
type completionResult struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Position int     `json:"position"`
	Points   int     `json:"points"`
	OldExact float64 `json:"old_exact_handicap"`
	NewExact float64 `json:"new_exact_handicap"`
}

// completeActiveRound flips the round to completed and applies the post-round
// handicap adjustment, all against the caller's transaction.
//
// The order inside the transaction matters:
//
//  1. First the compare-and-set UPDATE — it only matches while the round is
//     active and unadjusted, so of two racing completions exactly one wins.
//  2. Only after winning the CAS are the standings read and ranked. Reading
//     them earlier would let a score submitted between the read and the CAS
//     be stored yet ignored by the adjustment.
func completeActiveRound(tx *gorm.DB, round models.Round) ([]completionResult, error) {
	res := tx.Model(&models.Round{}).
		Where("id = ? AND status = ? AND handicaps_applied = false", round.ID, models.RoundStatusActive).
		Updates(map[string]interface{}{
			"status":            models.RoundStatusCompleted,
			"handicaps_applied": true,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errRoundNotCompletable
	}

	standings, err := standingsFor(tx, round)
	if err != nil {
		return nil, err
	}
	ranked := scoring.RankPlayers(standings)
	adjusted := scoring.AdjustHandicaps(ranked)

	// Standings rows carry the RoundPlayer ID; map back to the preloaded
	// entries so we know which ones link to a persistent profile.
	byID := make(map[string]models.RoundPlayer, len(round.Players))
	for _, rp := range round.Players {
		byID[rp.ID.String()] = rp
	}

	results := make([]completionResult, len(ranked))
	for i, s := range ranked {
		rp, ok := byID[s.PlayerID]
		if !ok {
			return nil, errors.New("standings row does not match a round player")
		}
		if err := tx.Model(&models.RoundPlayer{}).Where("id = ?", rp.ID).
			Update("exact_handicap", adjusted[i]).Error; err != nil {
			return nil, err
		}
		// Write through to the persistent profile, if this entry is linked
		// to one. Guests just keep the round-local value.
		if rp.PlayerID != nil {
			if err := tx.Model(&models.Player{}).Where("id = ?", *rp.PlayerID).
				Update("exact_handicap", adjusted[i]).Error; err != nil {
				return nil, err
			}
		}
		results[i] = completionResult{
			PlayerID: s.PlayerID,
			Name:     s.Name,
			Position: i + 1,
			Points:   s.TotalPoints,
			OldExact: s.ExactHandicap,
			NewExact: adjusted[i],
		}
	}
	return results, nil
}

// CompleteRound returns a handler for POST /api/v1/rounds/:id/complete.
//
// Completing a round is the one irreversible operation in the app: it ranks
// the field and applies the handicap adjustment to every player's exact
// handicap, writing the change through to linked profiles. The adjustment is
// not idempotent, so the whole thing runs in completeActiveRound inside one
// transaction, guarded by its compare-and-set. Two racing completion requests
// serialize on the row update and exactly one wins; the loser gets 409.
func CompleteRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userRole, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}
		round, err := loadRound(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		if !canManageRound(round, userID, userRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized to manage this round"})
		}

		var results []completionResult
		txErr := db.Transaction(func(tx *gorm.DB) error {
			var err error
			results, err = completeActiveRound(tx, round)
			return err
		})
		if txErr != nil {
			if errors.Is(txErr, errRoundNotCompletable) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "round is not active or was already completed"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to complete round"})
		}

		logging.Log.WithField("round_id", round.ID).Info("round completed, handicaps adjusted")
		return c.JSON(fiber.Map{
			"status":  string(models.RoundStatusCompleted),
			"results": results,
		})
	}
}

// errRoundNotCompletable signals the compare-and-set found the round in the
// wrong state. It never leaves this package — handlers translate it to 409.
var errRoundNotCompletable = errors.New("round not in a completable state")
