package handlers

import (
	"wellness360/internal/app"
	quoteController "wellness360/internal/controllers/quotes"
	"wellness360/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type QuoteHandler struct {
	Handler
	quoteController quoteController.QuoteControllerInterface
}

func NewQuoteHandler(app app.App, router fiber.Router) *QuoteHandler {
	return &QuoteHandler{
		quoteController: app.Controllers.Quote,
		Handler: Handler{
			log:        logger.New("handlers").File("quote_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *QuoteHandler) Register() {
	h.router.Get("/quotes", h.getQuote)
}

func (h *QuoteHandler) getQuote(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	quote, err := h.quoteController.GetQuote(c.UserContext(), user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch quote",
		})
	}

	return c.JSON(fiber.Map{"quote": quote})
}
