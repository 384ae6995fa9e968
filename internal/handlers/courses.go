// courses.go — course and tee administration:
// GET  /api/v1/courses  (anyone)
// POST /api/v1/courses  (admin only; course + tees + holes in one request)
//
// Course data is reference data: rounds point at it but never modify it.
// Creating it is admin-gated at the route level (middleware.RequireRole),
// and the hole sets are validated with the same permutation check the
// scoring engine enforces, so a round can never select an unusable tee.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/javierlh/golf-rounds/internal/models"
	"github.com/javierlh/golf-rounds/internal/scoring"
	"gorm.io/gorm"
)

// CreateCourseRequest is the JSON body for POST /api/v1/courses.
type CreateCourseRequest struct {
	Name      string             `json:"name"`
	City      string             `json:"city"`
	HoleCount int                `json:"hole_count"` // 9 or 18
	Tees      []CreateTeeRequest `json:"tees"`       // At least one
}

// CreateTeeRequest describes one tee set and its holes.
type CreateTeeRequest struct {
	Name   string              `json:"name"`
	Gender string              `json:"gender"` // "mens", "womens", "unisex"
	Slope  int                 `json:"slope"`  // 55–155; 113 if the course isn't rated
	Holes  []CreateHoleRequest `json:"holes"`  // Exactly hole_count entries
}

// CreateHoleRequest describes one hole on a tee set.
type CreateHoleRequest struct {
	HoleNumber  int  `json:"hole_number"`
	Par         int  `json:"par"`          // 3–5
	StrokeIndex int  `json:"stroke_index"` // 1..hole_count, unique within the tee
	Yardage     *int `json:"yardage"`
}

// CourseResponse is the list/detail representation of a course.
type CourseResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	City      string        `json:"city"`
	HoleCount int           `json:"hole_count"`
	Tees      []TeeResponse `json:"tees"`
}

// TeeResponse summarises one tee set.
type TeeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slope int    `json:"slope"`
	Par   int    `json:"par"`
}

func courseResponse(course models.Course) CourseResponse {
	tees := make([]TeeResponse, 0, len(course.Tees))
	for _, t := range course.Tees {
		tees = append(tees, TeeResponse{
			ID:    t.ID.String(),
			Name:  t.Name,
			Slope: t.SlopeRating,
			Par:   t.Par,
		})
	}
	return CourseResponse{
		ID:        course.ID.String(),
		Name:      course.Name,
		City:      course.City,
		HoleCount: course.HoleCount,
		Tees:      tees,
	}
}

// ListCourses returns a handler for GET /api/v1/courses.
func ListCourses(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var courses []models.Course
		if err := db.Preload("Tees").Find(&courses).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch courses"})
		}
		response := make([]CourseResponse, 0, len(courses))
		for _, course := range courses {
			response = append(response, courseResponse(course))
		}
		return c.JSON(response)
	}
}

// CreateCourse returns a handler for POST /api/v1/courses.
// Requires the "admin" role (enforced by RequireRole middleware on the route).
// The whole course — tees and holes included — is created in one transaction,
// so there is never a course with half its holes.
func CreateCourse(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateCourseRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		if req.HoleCount != 9 && req.HoleCount != 18 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hole_count must be 9 or 18"})
		}
		if len(req.Tees) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "at least one tee is required"})
		}

		// Validate every tee before touching the database.
		for _, tee := range req.Tees {
			switch tee.Gender {
			case "mens", "womens", "unisex":
				// valid
			default:
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tee gender must be 'mens', 'womens', or 'unisex'"})
			}
			if tee.Slope < scoring.MinSlope || tee.Slope > scoring.MaxSlope {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "slope must be between 55 and 155"})
			}
			if len(tee.Holes) != req.HoleCount {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "each tee needs exactly hole_count holes"})
			}
			// The engine's own validation rejects duplicate stroke indexes,
			// out-of-range pars, and repeated hole numbers.
			holes := make([]scoring.Hole, len(tee.Holes))
			for i, h := range tee.Holes {
				holes[i] = scoring.Hole{Number: h.HoleNumber, Par: h.Par, StrokeIndex: h.StrokeIndex}
			}
			if err := scoring.ValidateHoleSet(holes); err != nil {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
			}
		}

		var created models.Course
		txErr := db.Transaction(func(tx *gorm.DB) error {
			course := models.Course{
				Name:      req.Name,
				City:      req.City,
				HoleCount: req.HoleCount,
			}
			if err := tx.Create(&course).Error; err != nil {
				return err
			}
			for _, teeReq := range req.Tees {
				par := 0
				for _, h := range teeReq.Holes {
					par += h.Par
				}
				tee := models.Tee{
					CourseID:    course.ID,
					Name:        teeReq.Name,
					Gender:      models.TeeGender(teeReq.Gender),
					SlopeRating: teeReq.Slope,
					Par:         par,
				}
				if err := tx.Create(&tee).Error; err != nil {
					return err
				}
				for _, holeReq := range teeReq.Holes {
					hole := models.Hole{
						TeeID:       tee.ID,
						HoleNumber:  holeReq.HoleNumber,
						Par:         holeReq.Par,
						StrokeIndex: holeReq.StrokeIndex,
						Yardage:     holeReq.Yardage,
					}
					if err := tx.Create(&hole).Error; err != nil {
						return err
					}
				}
			}
			created = course
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create course"})
		}

		var full models.Course
		if err := db.Preload("Tees").First(&full, "id = ?", created.ID).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load course"})
		}
		return c.Status(fiber.StatusCreated).JSON(courseResponse(full))
	}
}
