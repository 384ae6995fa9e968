// cmd/server/main.go
// This is the entry point for the Golf Rounds API server.
// In Go, the "main" package and its "main()" function is where the program starts executing.
// The "cmd/server" directory follows a common Go convention: the cmd/ folder holds executable
// binaries, and internal/ holds reusable packages that are not meant to be imported by other projects.
package main

import (
	// fiber is a fast HTTP web framework inspired by Express.js
	"github.com/gofiber/fiber/v2"
	// cors handles Cross-Origin Resource Sharing — allows the mobile app to talk to
	// the API even though they're running on different origins (hosts/ports)
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"

	// Internal packages — our own code, imported by module path
	"github.com/javierlh/golf-rounds/internal/config"
	"github.com/javierlh/golf-rounds/internal/database"
	"github.com/javierlh/golf-rounds/internal/handlers"
	"github.com/javierlh/golf-rounds/internal/logging"
	"github.com/javierlh/golf-rounds/internal/middleware"
	"github.com/javierlh/golf-rounds/internal/websocket"
)

func main() {
	// Load configuration from environment variables (and optionally a .env file).
	// cfg is a pointer (*Config) containing all runtime settings like port, database URL, etc.
	cfg := config.Load()

	// Bootstrap the structured logger before anything can fail, so failures log properly.
	logging.Bootstrap(cfg.Env)

	// Connect to the PostgreSQL database.
	// We store the returned *gorm.DB — it's used by middleware and handlers to run queries.
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logging.Log.WithError(err).Fatal("failed to connect to database")
	}

	// Run any pending SQL migration files (in the migrations/ directory).
	// Migrations are SQL scripts that create or alter tables. Running them on startup
	// ensures the database schema is always in sync when the server starts.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logging.Log.WithError(err).Fatal("failed to run migrations")
	}

	// Create a new WebSocket Hub and start it in a goroutine.
	// The Hub manages all live WebSocket connections — people watching a round's
	// leaderboard move in real time as scores are entered.
	// "go hub.Run()" starts Run() as a goroutine: a lightweight concurrent function
	// that runs in the background without blocking the rest of startup.
	hub := websocket.NewHub()
	go hub.Run()

	// Create a new Fiber app (our HTTP server).
	app := fiber.New(fiber.Config{
		AppName: "Golf Rounds API",
	})

	// --- Global middleware ---
	// These run on every request before any route handler.
	// logger.New() logs each HTTP request: method, path, status code, and duration.
	app.Use(logger.New())
	// cors.New() allows requests from any origin (needed for the mobile app in development).
	// In production, lock this down to your specific domain.
	app.Use(cors.New())

	// --- Public routes (no auth required) ---
	// GET /health is a liveness check used by load balancers to verify the server is running.
	app.Get("/health", handlers.HealthCheck)

	// WebSocket: live leaderboard for a round. The Upgrade middleware rejects
	// plain-HTTP requests; Serve bridges each connection to the Hub.
	app.Get("/ws/rounds/:id", websocket.Upgrade, websocket.Serve(hub))

	// --- Authenticated API routes ---
	// All routes under /api/v1 require a valid Bearer token.
	// middleware.Auth(cfg, db) validates the token AND syncs the user to our database.
	//
	// Route group pattern: app.Group(prefix, middlewares...) applies the middleware
	// to every route registered on the returned group — we don't have to repeat it per route.
	api := app.Group("/api/v1", middleware.Auth(cfg, db))

	// Course reference data
	// GET  /api/v1/courses — list courses with their tee sets
	// POST /api/v1/courses — create a course incl. tees and holes (admin only)
	api.Get("/courses", handlers.ListCourses(db))
	api.Post("/courses", middleware.RequireRole("admin"), handlers.CreateCourse(db))

	// Persistent player profiles
	api.Get("/players", handlers.ListPlayers(db))
	api.Post("/players", handlers.CreatePlayer(db))

	// Rounds: the heart of the app
	api.Post("/rounds", handlers.CreateRound(db))
	api.Get("/rounds/:id", handlers.GetRound(db))
	api.Post("/rounds/:id/start", handlers.StartRound(db))
	api.Patch("/rounds/:id/config", handlers.ReconfigureRound(db))
	api.Post("/rounds/:id/complete", handlers.CompleteRound(db))

	// Players within a round
	api.Post("/rounds/:id/players", handlers.AddRoundPlayer(db))
	api.Delete("/rounds/:id/players/:playerID", handlers.RemoveRoundPlayer(db))

	// Scoring
	api.Put("/rounds/:id/scores", handlers.UpsertScore(db, hub))
	api.Get("/rounds/:id/leaderboard", handlers.GetLeaderboard(db))
	api.Get("/rounds/:id/awards", handlers.GetAwards(db))

	// Start listening for HTTP connections on the configured port.
	// ":" + cfg.Port produces a string like ":8080" — listen on all network interfaces.
	logging.Log.WithField("port", cfg.Port).Info("starting server")
	logging.Log.Fatal(app.Listen(":" + cfg.Port))
}
