package handlers

import (
	"errors"
	"wellness360/internal/app"
	exerciseController "wellness360/internal/controllers/exercises"
	"wellness360/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ExerciseHandler struct {
	Handler
	exerciseController exerciseController.ExerciseControllerInterface
}

func NewExerciseHandler(app app.App, router fiber.Router) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseController: app.Controllers.Exercise,
		Handler: Handler{
			log:        logger.New("handlers").File("exercise_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ExerciseHandler) Register() {
	exercises := h.router.Group("/exercises")
	exercises.Get("/summary", h.getSummary)
	exercises.Post("", h.logExercise)
}

func (h *ExerciseHandler) getSummary(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	summary, err := h.exerciseController.GetSummary(c.UserContext(), user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch exercise summary",
		})
	}

	return c.JSON(summary)
}

func (h *ExerciseHandler) logExercise(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req exerciseController.LogExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry, err := h.exerciseController.LogExercise(c.UserContext(), user, &req)
	if err != nil {
		if errors.Is(err, exerciseController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log exercise",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"exercise": entry})
}
