package handlers

import (
	"errors"
	"wellness360/internal/app"
	adminController "wellness360/internal/controllers/admin"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	Handler
	adminController adminController.AdminControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	return &AdminHandler{
		adminController: app.Controllers.Admin,
		Handler: Handler{
			log:        logger.New("handlers").File("admin_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	h.router.Get("/stats", h.getStats)
	h.router.Get("/users", h.searchUsers)
	h.router.Patch("/users/:id/active", h.setUserActive)
	h.router.Delete("/users/:id", h.deleteUser)
	h.router.Get("/quotes", h.listQuotes)
	h.router.Post("/quotes", h.createQuote)
	h.router.Delete("/quotes/:id", h.deleteQuote)
	h.router.Post("/jobs/daily-reset", h.triggerDailyReset)
}

func (h *AdminHandler) getStats(c *fiber.Ctx) error {
	stats, err := h.adminController.GetStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stats",
		})
	}

	return c.JSON(stats)
}

func (h *AdminHandler) searchUsers(c *fiber.Ctx) error {
	users, err := h.adminController.SearchUsers(c.UserContext(), c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search users",
		})
	}

	return c.JSON(fiber.Map{"users": users})
}

func (h *AdminHandler) setUserActive(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var req adminController.SetUserActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	profile, err := h.adminController.SetUserActive(c.UserContext(), userID, &req)
	if err != nil {
		if errors.Is(err, adminController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update user",
		})
	}

	return c.JSON(fiber.Map{"user": profile})
}

func (h *AdminHandler) deleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	if err := h.adminController.DeleteUser(c.UserContext(), userID); err != nil {
		if errors.Is(err, adminController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete user",
		})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *AdminHandler) listQuotes(c *fiber.Ctx) error {
	quotes, err := h.adminController.ListQuotes(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list quotes",
		})
	}

	return c.JSON(fiber.Map{"quotes": quotes})
}

func (h *AdminHandler) createQuote(c *fiber.Ctx) error {
	var req adminController.CreateQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	quote, err := h.adminController.CreateQuote(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, adminController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create quote",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"quote": quote})
}

func (h *AdminHandler) deleteQuote(c *fiber.Ctx) error {
	quoteID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quote ID",
		})
	}

	if err := h.adminController.DeleteQuote(c.UserContext(), quoteID); err != nil {
		if errors.Is(err, adminController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Quote not found",
			})
		}
		if errors.Is(err, adminController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete quote",
		})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *AdminHandler) triggerDailyReset(c *fiber.Ctx) error {
	if err := h.adminController.TriggerDailyReset(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to trigger daily reset",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Daily reset triggered",
	})
}
