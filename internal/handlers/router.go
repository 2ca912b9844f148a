package handlers

import (
	"wellness360/internal/app"
	"wellness360/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) error {
	api := router.Group("/api")
	api.Use(app.Middleware.TraceID())

	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()

	authed := api.Group("", app.Middleware.RequireAuth(app.Services.Session))
	NewHabitHandler(*app, authed).Register()
	NewTodoHandler(*app, authed).Register()
	NewMoodHandler(*app, authed).Register()
	NewStepsHandler(*app, authed).Register()
	NewExerciseHandler(*app, authed).Register()
	NewQuoteHandler(*app, authed).Register()
	NewChatHandler(*app, authed).Register()

	admin := authed.Group("/admin", app.Middleware.RequireAdmin())
	NewAdminHandler(*app, admin).Register()

	return nil
}
