package handlers

import (
	"errors"
	"wellness360/internal/app"
	habitController "wellness360/internal/controllers/habits"
	"wellness360/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type HabitHandler struct {
	Handler
	habitController habitController.HabitControllerInterface
}

func NewHabitHandler(app app.App, router fiber.Router) *HabitHandler {
	return &HabitHandler{
		habitController: app.Controllers.Habit,
		Handler: Handler{
			log:        logger.New("handlers").File("habit_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *HabitHandler) Register() {
	habits := h.router.Group("/habits")
	habits.Get("", h.getHabits)
	habits.Post("", h.createHabit)
	habits.Get("/progress", h.getProgress)
	habits.Post("/:id/done", h.markDone)
	habits.Delete("/:id", h.deleteHabit)
}

func (h *HabitHandler) getHabits(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	response, err := h.habitController.GetHabits(c.UserContext(), user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list habits",
		})
	}

	return c.JSON(response)
}

func (h *HabitHandler) createHabit(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req habitController.CreateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	habit, err := h.habitController.CreateHabit(c.UserContext(), user, &req)
	if err != nil {
		if errors.Is(err, habitController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create habit",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"habit": habit})
}

func (h *HabitHandler) markDone(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	habitID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid habit ID",
		})
	}

	habit, err := h.habitController.MarkDone(c.UserContext(), user, habitID)
	if err != nil {
		if errors.Is(err, habitController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, habitController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Habit not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark habit done",
		})
	}

	return c.JSON(fiber.Map{"habit": habit})
}

func (h *HabitHandler) deleteHabit(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	habitID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid habit ID",
		})
	}

	if err := h.habitController.DeleteHabit(c.UserContext(), user, habitID); err != nil {
		if errors.Is(err, habitController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, habitController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Habit not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete habit",
		})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *HabitHandler) getProgress(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	days := c.QueryInt("days")

	response, err := h.habitController.GetProgress(c.UserContext(), user, days)
	if err != nil {
		if errors.Is(err, habitController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch progress",
		})
	}

	return c.JSON(response)
}
