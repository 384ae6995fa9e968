// scores.go — score entry and the live leaderboard:
// PUT /api/v1/rounds/:id/scores       (upsert one player's score on one hole)
// GET /api/v1/rounds/:id/leaderboard  (ranked standings)
//
// Score entry is the hot path during a round: every submission recomputes the
// derived values through the scoring engine, stores them, and pushes a fresh
// leaderboard to everyone watching the round over WebSocket.
package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/javierlh/golf-rounds/internal/logging"
	"github.com/javierlh/golf-rounds/internal/models"
	"github.com/javierlh/golf-rounds/internal/scoring"
	"github.com/javierlh/golf-rounds/internal/websocket"
	"gorm.io/gorm"
)

// UpsertScoreRequest is the JSON body for PUT /api/v1/rounds/:id/scores.
//
// gross_strokes of 0 means "clear this score": the row is deleted outright.
// We never keep placeholder rows with null-ish values — a missing row IS the
// representation of "not played yet".
type UpsertScoreRequest struct {
	RoundPlayerID string `json:"round_player_id"` // Which player-in-round the score belongs to
	HoleNumber    int    `json:"hole_number"`
	GrossStrokes  int    `json:"gross_strokes"` // ≥1 to record, 0 to delete
	NoPasoRojas   bool   `json:"no_paso_rojas"` // Social forfeit flag, carried through untouched
	Abandoned     bool   `json:"abandoned"`     // Player didn't finish the hole
}

// ScoreResponse echoes the stored entry, derived values included, so the
// client can render the card without recomputing anything.
type ScoreResponse struct {
	RoundPlayerID    string `json:"round_player_id"`
	HoleNumber       int    `json:"hole_number"`
	GrossStrokes     int    `json:"gross_strokes"`
	StrokesReceived  int    `json:"strokes_received"`
	NetStrokes       int    `json:"net_strokes"`
	StablefordPoints int    `json:"stableford_points"`
	NoPasoRojas      bool   `json:"no_paso_rojas"`
	Abandoned        bool   `json:"abandoned"`
}

// UpsertScore returns the handler for PUT /api/v1/rounds/:id/scores.
//
// Concurrency note: several markers may submit scores for the same round at
// once. Each (player, hole) cell is independent and protected by a unique
// index, so the outcome is last-write-wins per cell — exactly the semantics a
// shared scorecard wants.
func UpsertScore(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}

		var req UpsertScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		rpID, err := uuid.Parse(req.RoundPlayerID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round_player_id"})
		}
		if req.GrossStrokes < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "gross_strokes cannot be negative"})
		}

		round, err := loadRound(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		if round.Status != models.RoundStatusActive {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "scores can only be entered on an active round"})
		}

		var rp models.RoundPlayer
		if err := db.First(&rp, "id = ? AND round_id = ?", rpID, roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not in this round"})
		}

		holes, err := activeHoles(round.Tee, round.NumHoles)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		hole, ok := holeByNumber(holes, req.HoleNumber)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hole is not part of this round"})
		}

		// gross 0 = delete the cell.
		if req.GrossStrokes == 0 {
			if err := db.Delete(&models.Score{}, "round_player_id = ? AND hole_number = ?", rp.ID, req.HoleNumber).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete score"})
			}
			broadcastLeaderboard(db, hub, round)
			return c.SendStatus(fiber.StatusNoContent)
		}

		result, err := scoring.ComputeScore(req.GrossStrokes, rp.PlayingHandicap, hole, holes)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}

		// Upsert: update the existing cell if there is one, otherwise insert.
		// The unique index on (round_player_id, hole_number) keeps a race
		// between two inserts from creating duplicate cells.
		score := models.Score{
			RoundPlayerID:    rp.ID,
			HoleNumber:       req.HoleNumber,
			GrossStrokes:     req.GrossStrokes,
			StrokesReceived:  result.StrokesReceived,
			NetStrokes:       result.NetStrokes,
			StablefordPoints: result.StablefordPoints,
			NoPasoRojas:      req.NoPasoRojas,
			Abandoned:        req.Abandoned,
			EnteredBy:        userID,
		}
		var existing models.Score
		findErr := db.First(&existing, "round_player_id = ? AND hole_number = ?", rp.ID, req.HoleNumber).Error
		switch {
		case findErr == nil:
			if err := db.Model(&existing).Updates(map[string]interface{}{
				"gross_strokes":     score.GrossStrokes,
				"strokes_received":  score.StrokesReceived,
				"net_strokes":       score.NetStrokes,
				"stableford_points": score.StablefordPoints,
				"no_paso_rojas":     score.NoPasoRojas,
				"abandoned":         score.Abandoned,
				"entered_by":        score.EnteredBy,
			}).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update score"})
			}
		case findErr == gorm.ErrRecordNotFound:
			if err := db.Create(&score).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record score"})
			}
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
		}

		broadcastLeaderboard(db, hub, round)
		return c.JSON(ScoreResponse{
			RoundPlayerID:    rp.ID.String(),
			HoleNumber:       score.HoleNumber,
			GrossStrokes:     score.GrossStrokes,
			StrokesReceived:  score.StrokesReceived,
			NetStrokes:       score.NetStrokes,
			StablefordPoints: score.StablefordPoints,
			NoPasoRojas:      score.NoPasoRojas,
			Abandoned:        score.Abandoned,
		})
	}
}

// LeaderboardRow is one ranked line of the leaderboard response.
type LeaderboardRow struct {
	Position        int    `json:"position"`
	PlayerID        string `json:"player_id"`
	Name            string `json:"name"`
	TotalPoints     int    `json:"total_points"`
	PlayingHandicap int    `json:"playing_handicap"`
	HolesScored     int    `json:"holes_scored"`
	ScoreToPar      string `json:"score_to_par"` // "E", "+N", "-N", or "-" while incomplete
}

// GetLeaderboard returns the handler for GET /api/v1/rounds/:id/leaderboard.
// An empty round produces an empty list — normal during setup, not an error.
func GetLeaderboard(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}
		round, err := loadRound(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		rows, err := leaderboardRows(db, round)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to build leaderboard"})
		}
		return c.JSON(rows)
	}
}

// leaderboardRows ranks the round's standings and decorates each row with the
// player's score-to-par display. Shared by the GET endpoint and the WebSocket
// broadcast so watchers and pollers always see the same board.
func leaderboardRows(db *gorm.DB, round models.Round) ([]LeaderboardRow, error) {
	standings, err := standingsFor(db, round)
	if err != nil {
		return nil, err
	}
	ranked := scoring.RankPlayers(standings)

	holes, holesErr := activeHoles(round.Tee, round.NumHoles)
	par := 0
	if holesErr == nil {
		par = coursePar(holes)
	}

	rows := make([]LeaderboardRow, 0, len(ranked))
	for i, s := range ranked {
		row := LeaderboardRow{
			Position:        i + 1,
			PlayerID:        s.PlayerID,
			Name:            s.Name,
			TotalPoints:     s.TotalPoints,
			PlayingHandicap: s.PlayingHandicap,
			ScoreToPar:      scoring.ScoreToParIncomplete.Display,
		}

		// Score-to-par needs the player's full clean card.
		type cardAgg struct {
			TotalGross int
			Scored     int
			Abandoned  int
		}
		var agg cardAgg
		err := db.Model(&models.Score{}).
			Where("round_player_id = ?", s.PlayerID).
			Select("COALESCE(SUM(gross_strokes),0) AS total_gross, COUNT(*) AS scored, COUNT(*) FILTER (WHERE abandoned) AS abandoned").
			Scan(&agg).Error
		if err != nil {
			return nil, err
		}
		row.HolesScored = agg.Scored
		if holesErr == nil {
			stp := scoring.ComputeScoreToPar(agg.TotalGross, par, s.PlayingHandicap, agg.Scored, round.NumHoles, agg.Abandoned > 0)
			row.ScoreToPar = stp.Display
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// broadcastLeaderboard pushes the current board to everyone watching the
// round. Failures are logged and swallowed: a dropped push only delays a
// watcher until the next score comes in, and must never fail the score write
// that triggered it.
func broadcastLeaderboard(db *gorm.DB, hub *websocket.Hub, round models.Round) {
	rows, err := leaderboardRows(db, round)
	if err != nil {
		logging.Log.WithField("round_id", round.ID).WithError(err).Warn("leaderboard broadcast skipped")
		return
	}
	data, err := json.Marshal(rows)
	if err != nil {
		logging.Log.WithField("round_id", round.ID).WithError(err).Warn("leaderboard marshal failed")
		return
	}
	hub.BroadcastToRound(round.ID.String(), data)
}
