package handlers

import (
	"errors"
	"wellness360/internal/app"
	chatController "wellness360/internal/controllers/chat"
	"wellness360/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	Handler
	chatController chatController.ChatControllerInterface
}

func NewChatHandler(app app.App, router fiber.Router) *ChatHandler {
	return &ChatHandler{
		chatController: app.Controllers.Chat,
		Handler: Handler{
			log:        logger.New("handlers").File("chat_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ChatHandler) Register() {
	chat := h.router.Group("/chat")
	chat.Get("/messages", h.getHistory)
	chat.Post("/messages", h.sendMessage)
	chat.Delete("/messages", h.clearHistory)
}

func (h *ChatHandler) getHistory(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	history, err := h.chatController.GetHistory(c.UserContext(), user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch chat history",
		})
	}

	return c.JSON(fiber.Map{"messages": history})
}

func (h *ChatHandler) sendMessage(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req chatController.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.chatController.SendMessage(c.UserContext(), user, &req)
	if err != nil {
		if errors.Is(err, chatController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, chatController.ErrUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Chat assistant is not available",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *ChatHandler) clearHistory(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	if err := h.chatController.ClearHistory(c.UserContext(), user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear chat history",
		})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
