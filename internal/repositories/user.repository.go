package repositories

import (
	"context"
	"time"
	"wellness360/internal/database"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_CACHE_PREFIX = "user"
	USER_CACHE_EXPIRY = 30 * time.Minute
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error)
	Update(ctx context.Context, tx *gorm.DB, user *User) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	PurgeUserData(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListActiveUserIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
	Search(ctx context.Context, tx *gorm.DB, query string, limit int) ([]User, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type userRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		cache: db.Cache.User,
		log:   logger.New("userRepository"),
	}
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(user).Error; err != nil {
		return log.Err("failed to create user", err, "email", user.Email)
	}

	r.cacheUser(ctx, user)

	return nil
}

func (r *userRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*User, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	if user, found := r.getCachedUser(ctx, id); found {
		return user, nil
	}

	var user User
	if err := tx.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get user", err, "userID", id)
	}

	r.cacheUser(ctx, &user)

	return &user, nil
}

func (r *userRepository) GetByEmail(
	ctx context.Context,
	tx *gorm.DB,
	email string,
) (*User, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByEmail")

	var user User
	if err := tx.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get user by email", err)
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if err := tx.WithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	r.cacheUser(ctx, user)

	return nil
}

func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&User{})
	if result.Error != nil {
		return log.Err("failed to delete user", result.Error, "userID", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.clearCachedUser(ctx, id)

	return nil
}

// PurgeUserData removes every row the user owns across all feature tables.
// Runs inside the caller's transaction together with Delete so an account
// removal is all-or-nothing.
func (r *userRepository) PurgeUserData(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.TraceFromContext(ctx).Function("PurgeUserData")

	owned := []any{
		&HabitLog{},
		&Habit{},
		&Todo{},
		&MoodEntry{},
		&StepEntry{},
		&ExerciseLog{},
		&ChatMessage{},
	}

	for _, model := range owned {
		if err := tx.WithContext(ctx).
			Where("user_id = ?", id).
			Delete(model).Error; err != nil {
			return log.Err("failed to purge user data", err, "userID", id)
		}
	}

	return nil
}

// ListActiveUserIDs returns the IDs the nightly reset iterates. Banned users
// keep their data but drop out of the reset cycle.
func (r *userRepository) ListActiveUserIDs(
	ctx context.Context,
	tx *gorm.DB,
) ([]uuid.UUID, error) {
	log := r.log.TraceFromContext(ctx).Function("ListActiveUserIDs")

	var ids []uuid.UUID
	if err := tx.WithContext(ctx).
		Model(&User{}).
		Where("is_active = ?", true).
		Order("created_at").
		Pluck("id", &ids).Error; err != nil {
		return nil, log.Err("failed to list active users", err)
	}

	return ids, nil
}

func (r *userRepository) Search(
	ctx context.Context,
	tx *gorm.DB,
	query string,
	limit int,
) ([]User, error) {
	log := r.log.TraceFromContext(ctx).Function("Search")

	var users []User
	db := tx.WithContext(ctx).Model(&User{}).Order("created_at DESC").Limit(limit)
	if query != "" {
		pattern := "%" + query + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if err := db.Find(&users).Error; err != nil {
		return nil, log.Err("failed to search users", err, "query", query)
	}

	return users, nil
}

func (r *userRepository) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	log := r.log.TraceFromContext(ctx).Function("CountAll")

	var count int64
	if err := tx.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count users", err)
	}

	return count, nil
}

func (r *userRepository) getCachedUser(ctx context.Context, id uuid.UUID) (*User, bool) {
	if r.cache == nil {
		return nil, false
	}

	var user User
	found, err := database.NewCacheBuilder(r.cache, id).
		WithContext(ctx).
		WithHash(USER_CACHE_PREFIX).
		Get(&user)
	if err != nil || !found {
		return nil, false
	}

	return &user, true
}

func (r *userRepository) cacheUser(ctx context.Context, user *User) {
	if r.cache == nil {
		return
	}

	err := database.NewCacheBuilder(r.cache, user.ID).
		WithContext(ctx).
		WithHash(USER_CACHE_PREFIX).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		Set()
	if err != nil {
		r.log.Warn("failed to cache user", "userID", user.ID, "error", err)
	}
}

func (r *userRepository) clearCachedUser(ctx context.Context, id uuid.UUID) {
	if r.cache == nil {
		return
	}

	err := database.NewCacheBuilder(r.cache, id).
		WithContext(ctx).
		WithHash(USER_CACHE_PREFIX).
		Delete()
	if err != nil {
		r.log.Warn("failed to clear cached user", "userID", id, "error", err)
	}
}
