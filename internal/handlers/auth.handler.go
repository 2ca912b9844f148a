package handlers

import (
	"errors"
	"wellness360/internal/app"
	authController "wellness360/internal/controllers/auth"
	"wellness360/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
	app            app.App
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	return &AuthHandler{
		authController: app.Controllers.Auth,
		app:            app,
		Handler: Handler{
			log:        logger.New("handlers").File("auth_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/register", h.register)
	auth.Post("/login", h.login)
	auth.Post("/logout", h.middleware.RequireAuth(h.app.Services.Session), h.logout)
	auth.Get("/me", h.middleware.RequireAuth(h.app.Services.Session), h.me)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var req authController.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.authController.Register(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, authController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, authController.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email already registered",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req authController.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.authController.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, authController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, authController.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log in",
		})
	}

	return c.JSON(response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	if err := h.authController.Logout(c.UserContext(), claims); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log out",
		})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	return c.JSON(fiber.Map{"user": user.ToProfile()})
}
