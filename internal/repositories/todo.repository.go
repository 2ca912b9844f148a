package repositories

import (
	"context"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TodoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, todo *Todo) error
	GetByID(ctx context.Context, tx *gorm.DB, todoID int, userID uuid.UUID) (*Todo, error)
	ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*Todo, error)
	Update(ctx context.Context, tx *gorm.DB, todo *Todo) error
	Delete(ctx context.Context, tx *gorm.DB, todoID int, userID uuid.UUID) error
}

type todoRepository struct{}

func NewTodoRepository() TodoRepository {
	return &todoRepository{}
}

func (r *todoRepository) Create(ctx context.Context, tx *gorm.DB, todo *Todo) error {
	log := logger.New("todoRepository").TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(todo).Error; err != nil {
		return log.Err("failed to create todo", err, "userID", todo.UserID)
	}

	return nil
}

func (r *todoRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	todoID int,
	userID uuid.UUID,
) (*Todo, error) {
	log := logger.New("todoRepository").TraceFromContext(ctx).Function("GetByID")

	var todo Todo
	if err := tx.WithContext(ctx).
		Where("id = ? AND user_id = ?", todoID, userID).
		First(&todo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get todo", err, "todoID", todoID)
	}

	return &todo, nil
}

func (r *todoRepository) ListForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]*Todo, error) {
	log := logger.New("todoRepository").TraceFromContext(ctx).Function("ListForUser")

	var todos []*Todo
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&todos).Error; err != nil {
		return nil, log.Err("failed to list todos", err, "userID", userID)
	}

	return todos, nil
}

func (r *todoRepository) Update(ctx context.Context, tx *gorm.DB, todo *Todo) error {
	log := logger.New("todoRepository").TraceFromContext(ctx).Function("Update")

	if err := tx.WithContext(ctx).Save(todo).Error; err != nil {
		return log.Err("failed to update todo", err, "todoID", todo.ID)
	}

	return nil
}

func (r *todoRepository) Delete(
	ctx context.Context,
	tx *gorm.DB,
	todoID int,
	userID uuid.UUID,
) error {
	log := logger.New("todoRepository").TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).
		Where("id = ? AND user_id = ?", todoID, userID).
		Delete(&Todo{})
	if result.Error != nil {
		return log.Err("failed to delete todo", result.Error, "todoID", todoID)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
