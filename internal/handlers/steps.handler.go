package handlers

import (
	"errors"
	"wellness360/internal/app"
	stepsController "wellness360/internal/controllers/steps"
	"wellness360/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type StepsHandler struct {
	Handler
	stepsController stepsController.StepsControllerInterface
}

func NewStepsHandler(app app.App, router fiber.Router) *StepsHandler {
	return &StepsHandler{
		stepsController: app.Controllers.Steps,
		Handler: Handler{
			log:        logger.New("handlers").File("steps_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *StepsHandler) Register() {
	steps := h.router.Group("/steps")
	steps.Get("", h.getSteps)
	steps.Post("", h.addSteps)
	steps.Put("/goal", h.setGoal)
}

func (h *StepsHandler) getSteps(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	days := c.QueryInt("days")

	response, err := h.stepsController.GetSteps(c.UserContext(), user, days)
	if err != nil {
		if errors.Is(err, stepsController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch steps",
		})
	}

	return c.JSON(response)
}

func (h *StepsHandler) addSteps(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req stepsController.AddStepsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	day, err := h.stepsController.AddSteps(c.UserContext(), user, &req)
	if err != nil {
		if errors.Is(err, stepsController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add steps",
		})
	}

	return c.JSON(fiber.Map{"today": day})
}

func (h *StepsHandler) setGoal(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req stepsController.SetGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	day, err := h.stepsController.SetGoal(c.UserContext(), user, &req)
	if err != nil {
		if errors.Is(err, stepsController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to set goal",
		})
	}

	return c.JSON(fiber.Map{"today": day})
}
