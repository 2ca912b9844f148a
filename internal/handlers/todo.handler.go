package handlers

import (
	"errors"
	"wellness360/internal/app"
	todoController "wellness360/internal/controllers/todos"
	"wellness360/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type TodoHandler struct {
	Handler
	todoController todoController.TodoControllerInterface
}

func NewTodoHandler(app app.App, router fiber.Router) *TodoHandler {
	return &TodoHandler{
		todoController: app.Controllers.Todo,
		Handler: Handler{
			log:        logger.New("handlers").File("todo_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *TodoHandler) Register() {
	todos := h.router.Group("/todos")
	todos.Get("", h.getTodos)
	todos.Post("", h.createTodo)
	todos.Patch("/:id/toggle", h.toggleTodo)
	todos.Delete("/:id", h.deleteTodo)
}

func (h *TodoHandler) getTodos(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	todos, err := h.todoController.GetTodos(c.UserContext(), user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list todos",
		})
	}

	return c.JSON(fiber.Map{"todos": todos})
}

func (h *TodoHandler) createTodo(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req todoController.CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	todo, err := h.todoController.CreateTodo(c.UserContext(), user, &req)
	if err != nil {
		if errors.Is(err, todoController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create todo",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"todo": todo})
}

func (h *TodoHandler) toggleTodo(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	todoID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid todo ID",
		})
	}

	todo, err := h.todoController.ToggleTodo(c.UserContext(), user, todoID)
	if err != nil {
		if errors.Is(err, todoController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Todo not found",
			})
		}
		if errors.Is(err, todoController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to toggle todo",
		})
	}

	return c.JSON(fiber.Map{"todo": todo})
}

func (h *TodoHandler) deleteTodo(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	todoID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid todo ID",
		})
	}

	if err := h.todoController.DeleteTodo(c.UserContext(), user, todoID); err != nil {
		if errors.Is(err, todoController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Todo not found",
			})
		}
		if errors.Is(err, todoController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete todo",
		})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
