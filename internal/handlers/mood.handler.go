package handlers

import (
	"errors"
	"wellness360/internal/app"
	moodController "wellness360/internal/controllers/moods"
	"wellness360/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type MoodHandler struct {
	Handler
	moodController moodController.MoodControllerInterface
}

func NewMoodHandler(app app.App, router fiber.Router) *MoodHandler {
	return &MoodHandler{
		moodController: app.Controllers.Mood,
		Handler: Handler{
			log:        logger.New("handlers").File("mood_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MoodHandler) Register() {
	moods := h.router.Group("/moods")
	moods.Post("", h.logMood)
	moods.Get("/summary", h.getSummary)
}

func (h *MoodHandler) logMood(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req moodController.LogMoodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry, err := h.moodController.LogMood(c.UserContext(), user, &req)
	if err != nil {
		if errors.Is(err, moodController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log mood",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mood": entry})
}

func (h *MoodHandler) getSummary(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	days := c.QueryInt("days")

	summary, err := h.moodController.GetSummary(c.UserContext(), user, days)
	if err != nil {
		if errors.Is(err, moodController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch mood summary",
		})
	}

	return c.JSON(summary)
}
