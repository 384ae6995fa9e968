// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, default values, and relationships.
//
// The data model represents a social golf scoring app where:
//   - Users create Rounds played at a Course from a specific set of Tees
//   - Players join a Round, carrying a handicap snapshot for that round
//   - Scores track strokes per player per hole, plus the derived net/Stableford values
//
// There is no league or season concept — a Round is the whole world. Players may
// optionally link to a persistent Player profile so their exact handicap follows
// them from round to round and is adjusted when a round completes.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// Using UUIDs instead of auto-incrementing integers makes IDs safe to generate
	// client-side and avoids leaking record counts to end users.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string type
// plus constants. This gives us type safety — you can't accidentally pass a UserRole
// where a RoundStatus is expected — while keeping the values human-readable in the database.

// UserRole represents a user's global permission level across the entire platform.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin" // Full access: manage any round, edit course data
	UserRoleUser  UserRole = "user"  // Regular player: can create/join rounds and record scores
)

// RoundStatus tracks the lifecycle of a round.
// The active → completed transition is the important one: it is performed exactly
// once with a guarded UPDATE, because completing a round applies the post-round
// handicap adjustment to every linked player profile.
type RoundStatus string

const (
	RoundStatusScheduled RoundStatus = "scheduled" // Round is set up but play hasn't started
	RoundStatusActive    RoundStatus = "active"    // Round is currently being played
	RoundStatusCompleted RoundStatus = "completed" // Round finished; handicaps adjusted, scores final
)

// RoundPlayerStatus tracks a player's state within a single round.
type RoundPlayerStatus string

const (
	RoundPlayerStatusActive    RoundPlayerStatus = "active"    // Playing (or about to)
	RoundPlayerStatusWithdrawn RoundPlayerStatus = "withdrawn" // Withdrew; their scores are removed
)

// TeeGender indicates which gender a set of tees is rated for.
// Golf courses rate tees separately because different tee boxes have different distances.
type TeeGender string

const (
	TeeGenderMens   TeeGender = "mens"
	TeeGenderWomens TeeGender = "womens"
	TeeGenderUnisex TeeGender = "unisex" // No gender designation — open to all
)

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name (snake_cased and
// pluralized) as the table name by default: User -> users, Round -> rounds, etc.

// User represents a registered person in the system.
// Users are created automatically the first time an authenticated user hits the API
// ("lazy sync" — see internal/middleware/auth.go).
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"` // UUID primary key; the DB generates it automatically
	ExternalID  *string   `gorm:"uniqueIndex:idx_users_external_id"`              // ID from the external identity provider; pointer = nullable for legacy rows
	DisplayName string    `gorm:"not null"`                                       // The name shown in the app; populated from the JWT "name" claim
	Email       string    `gorm:"uniqueIndex;not null"`                           // Unique email; populated from the JWT "email" claim
	Role        UserRole  `gorm:"type:user_role;not null;default:'user'"`         // Global role; synced from the JWT "role" claim
	CreatedAt   time.Time // GORM automatically sets this on create
	UpdatedAt   time.Time // GORM automatically updates this on every save
}

// Player is a persistent golfer profile that survives across rounds.
// The important field is ExactHandicap: the player's underlying skill rating.
//
// ExactHandicap is ALWAYS stored on a 9-hole basis. When a player joins an
// 18-hole round it is doubled before the playing handicap is derived. Storing
// one canonical basis avoids ambiguity when the same profile plays rounds of
// different lengths.
//
// A Player may be linked to a User (a registered account) or stand alone
// (a guest someone added by name). Post-round handicap adjustment writes the
// new exact handicap back here — that is the one mutation this table sees
// outside of profile edits.
type Player struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        *uuid.UUID `gorm:"type:uuid;uniqueIndex"` // Optional link to a registered account; nullable for guests
	User          *User      `gorm:"foreignKey:UserID"`
	Name          string     `gorm:"not null"`
	ExactHandicap float64    `gorm:"type:decimal(4,1);not null;default:0"` // 9-hole basis; may be negative for plus-handicap players
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Course represents a golf course where rounds are played.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	City      string    `gorm:"not null;default:''"` // Defaults to empty string; can be filled in later
	HoleCount int       `gorm:"not null;default:18"` // Most courses have 18 holes; some have 9
	CreatedAt time.Time
	UpdatedAt time.Time
	Tees      []Tee `gorm:"foreignKey:CourseID"` // One-to-many: a course has many sets of tees (different distances/ratings)
}

// Tee represents one set of tee boxes on a course (e.g., "Blue", "White", "Red").
// Each tee set has its own slope and par — used for handicap calculations.
type Tee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null"`
	Course      Course    `gorm:"foreignKey:CourseID"`
	Name        string    `gorm:"not null"` // e.g., "Blue", "White", "Red", "Default"
	Gender      TeeGender `gorm:"type:tee_gender;not null"`
	SlopeRating int       `gorm:"not null;default:113"` // USGA slope rating (55–155, neutral 113) — course difficulty for bogey golfers
	Par         int       `gorm:"not null"`             // Expected score for the full set of holes on these tees
	Holes       []Hole    `gorm:"foreignKey:TeeID"`     // One-to-many: each tee set has individual hole details
}

// Hole stores per-hole details for a specific set of tees.
// Par and StrokeIndex can vary between tee sets on the same course.
//
// Invariant: within one tee set's holes (and therefore within one round's active
// hole set), stroke indexes form a permutation of 1..N — exactly one hole per
// index, no duplicates. The scoring engine validates this before allocating
// handicap strokes and fails loudly if the permutation is broken, because the
// allocation would otherwise be ill-defined.
type Hole struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeeID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tee_hole_number"`
	Tee         Tee       `gorm:"foreignKey:TeeID"`
	HoleNumber  int       `gorm:"not null;uniqueIndex:idx_tee_hole_number"` // 1–18 (or 1–9 for a 9-hole course)
	Par         int       `gorm:"not null"`                                 // Expected strokes for this hole (typically 3, 4, or 5)
	StrokeIndex int       `gorm:"not null"`                                 // Handicap allocation: index 1 = hardest (gets first handicap stroke), N = easiest
	Yardage     *int      // Distance in yards from this tee box; optional because some courses don't publish yardages
}

// Round is the aggregate root: a single outing at a course, with a set of
// players and a sparse grid of per-hole scores (not every player×hole
// combination needs a row).
//
// Configuration (NumHoles, UseSlope, Slope, TeeID) is mutable mid-round — a
// group might discover they only have daylight for 9 holes, or switch tees.
// Any configuration change triggers a full recomputation of every player's
// playing handicap and every stored score, performed as a snapshot-and-swap
// inside one transaction (see handlers/rounds.go) so a failure can never leave
// half-updated scores behind.
//
// HandicapsApplied guards the post-round adjustment: the adjustment itself is
// deliberately not idempotent (applying it twice shifts handicaps twice), so
// the completed transition and this flag together ensure it runs exactly once.
type Round struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string      `gorm:"not null"`
	CourseID         uuid.UUID   `gorm:"type:uuid;not null"`
	Course           Course      `gorm:"foreignKey:CourseID"`
	TeeID            uuid.UUID   `gorm:"type:uuid;not null"` // Which tee set's par/stroke-index/slope apply
	Tee              Tee         `gorm:"foreignKey:TeeID"`
	NumHoles         int         `gorm:"not null;default:9"`     // 9 or 18
	UseSlope         bool        `gorm:"not null;default:false"` // Whether the slope rating scales playing handicaps
	Slope            int         `gorm:"not null;default:113"`   // Effective slope for this round; 113 (neutral) when slope play is off
	Status           RoundStatus `gorm:"type:round_status;not null;default:'scheduled'"`
	HandicapsApplied bool        `gorm:"not null;default:false"` // True once the post-round adjustment has run; never reset
	ScheduledDate    time.Time   `gorm:"not null"`
	CreatedBy        uuid.UUID   `gorm:"type:uuid;not null"`   // Foreign key: which user created this round
	Creator          User        `gorm:"foreignKey:CreatedBy"` // GORM relationship: preloads the User struct when queried
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Players          []RoundPlayer `gorm:"foreignKey:RoundID"` // Players participating in this round
}

// RoundPlayer links a Player (or a one-off guest) to a specific Round and
// stores their handicap state for it.
//
// ExactHandicap is a per-round snapshot on the canonical 9-hole basis, copied
// from the Player profile when they join (or entered directly for guests).
// PlayingHandicap is DERIVED: round(exact [×2 for 18 holes] × slope/113),
// recalculated whenever the round configuration changes. It is stored rather
// than computed on the fly so that stored scores and the handicap that
// produced them always agree.
type RoundPlayer struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundID         uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_round_player"` // Composite unique: one entry per player per round
	Round           Round             `gorm:"foreignKey:RoundID"`
	PlayerID        *uuid.UUID        `gorm:"type:uuid;uniqueIndex:idx_round_player"` // Optional link to a persistent profile; nil for guests
	Player          *Player           `gorm:"foreignKey:PlayerID"`
	Name            string            `gorm:"not null"`                             // Display name within this round
	ExactHandicap   float64           `gorm:"type:decimal(4,1);not null;default:0"` // 9-hole basis snapshot for this round
	PlayingHandicap int               `gorm:"not null;default:0"`                   // Derived whole-number strokes for this configuration
	Status          RoundPlayerStatus `gorm:"type:round_player_status;not null;default:'active'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Score records the strokes a player took on a single hole during a round,
// together with the derived values the scoring engine computed from them.
//
// The derived columns (StrokesReceived, NetStrokes, StablefordPoints) are never
// edited directly — they are always recomputed from GrossStrokes + the player's
// current PlayingHandicap + the hole's par/stroke-index, so a row can never
// hold derived values that disagree with their inputs.
//
// Recording a score for a (player, hole) that already has one overwrites it
// (upsert). Clearing the gross strokes deletes the row entirely — we never
// store a "null score" placeholder.
type Score struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundPlayerID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_round_player_hole"` // Composite unique: one score per player per hole
	RoundPlayer      RoundPlayer `gorm:"foreignKey:RoundPlayerID"`
	HoleNumber       int         `gorm:"not null;uniqueIndex:idx_round_player_hole"` // 1–18
	GrossStrokes     int         `gorm:"not null"`               // Actual strokes taken (≥1)
	StrokesReceived  int         `gorm:"not null"`               // Handicap strokes allocated to this hole; negative for plus-handicap players
	NetStrokes       int         `gorm:"not null"`               // GrossStrokes minus StrokesReceived
	StablefordPoints int         `gorm:"not null"`               // max(0, par − net + 2)
	NoPasoRojas      bool        `gorm:"not null;default:false"` // Social penalty flag ("no pasó las rojas"); tallied in awards, never in scoring
	Abandoned        bool        `gorm:"not null;default:false"` // Hole not finished; excluded from clean statistics
	EnteredBy        uuid.UUID   `gorm:"type:uuid;not null"`     // Which user entered this score (could be the player or a marker)
	Enterer          User        `gorm:"foreignKey:EnteredBy"`
	EnteredAt        time.Time   `gorm:"autoCreateTime"` // Set automatically by GORM on insert
	UpdatedAt        time.Time   `gorm:"autoUpdateTime"` // Updated automatically by GORM on every save
}
