package todoController

import (
	"context"
	"errors"
	"strings"
	"wellness360/internal/database"
	. "wellness360/internal/models"
	"wellness360/internal/repositories"
	"wellness360/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const MaxTaskLength = 500

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type TodoController struct {
	todoRepo           repositories.TodoRepository
	transactionService *services.TransactionService
	db                 database.DB
	log                logger.Logger
}

type CreateTodoRequest struct {
	Task string `json:"task"`
}

type TodoControllerInterface interface {
	CreateTodo(ctx context.Context, user *User, request *CreateTodoRequest) (*Todo, error)
	GetTodos(ctx context.Context, user *User) ([]*Todo, error)
	ToggleTodo(ctx context.Context, user *User, todoID int) (*Todo, error)
	DeleteTodo(ctx context.Context, user *User, todoID int) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) TodoControllerInterface {
	return &TodoController{
		todoRepo:           repos.Todo,
		transactionService: services.Transaction,
		db:                 db,
		log:                logger.New("todoController"),
	}
}

func (c *TodoController) CreateTodo(
	ctx context.Context,
	user *User,
	request *CreateTodoRequest,
) (*Todo, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateTodo")

	if request == nil || strings.TrimSpace(request.Task) == "" {
		return nil, log.ErrorWithType(ErrValidation, "task is required")
	}
	if len(request.Task) > MaxTaskLength {
		return nil, log.ErrorWithType(ErrValidation, "task too long", "max", MaxTaskLength)
	}

	todo := &Todo{
		UserID: user.ID,
		Task:   request.Task,
		Status: TodoStatusPending,
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.todoRepo.Create(ctx, tx, todo)
	})
	if err != nil {
		return nil, log.Err("failed to create todo", err, "userID", user.ID)
	}

	return todo, nil
}

func (c *TodoController) GetTodos(ctx context.Context, user *User) ([]*Todo, error) {
	log := c.log.TraceFromContext(ctx).Function("GetTodos")

	todos, err := c.todoRepo.ListForUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.Err("failed to list todos", err, "userID", user.ID)
	}

	return todos, nil
}

func (c *TodoController) ToggleTodo(
	ctx context.Context,
	user *User,
	todoID int,
) (*Todo, error) {
	log := c.log.TraceFromContext(ctx).Function("ToggleTodo")

	if todoID <= 0 {
		return nil, log.ErrorWithType(ErrValidation, "todoId is required")
	}

	var todo *Todo
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		found, err := c.todoRepo.GetByID(ctx, tx, todoID, user.ID)
		if err != nil {
			return err
		}

		found.Toggle()
		if err := c.todoRepo.Update(ctx, tx, found); err != nil {
			return err
		}

		todo = found
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "todo not found", "todoID", todoID)
		}
		return nil, log.Err("failed to toggle todo", err, "todoID", todoID)
	}

	return todo, nil
}

func (c *TodoController) DeleteTodo(ctx context.Context, user *User, todoID int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteTodo")

	if todoID <= 0 {
		return log.ErrorWithType(ErrValidation, "todoId is required")
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.todoRepo.Delete(ctx, tx, todoID, user.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "todo not found", "todoID", todoID)
		}
		return log.Err("failed to delete todo", err, "todoID", todoID)
	}

	return nil
}
