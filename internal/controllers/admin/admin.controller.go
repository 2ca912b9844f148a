package adminController

import (
	"context"
	"errors"
	"strings"
	"wellness360/internal/database"
	. "wellness360/internal/models"
	"wellness360/internal/repositories"
	"wellness360/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const UserSearchLimit = 50

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type AdminController struct {
	userRepo           repositories.UserRepository
	habitRepo          repositories.HabitRepository
	habitLogRepo       repositories.HabitLogRepository
	quoteRepo          repositories.QuoteRepository
	schedulerService   *services.SchedulerService
	transactionService *services.TransactionService
	db                 database.DB
	log                logger.Logger
}

type StatsResponse struct {
	TotalUsers       int64 `json:"totalUsers"`
	HabitsDoneToday  int64 `json:"habitsDoneToday"`
	TotalCompletions int64 `json:"totalCompletions"`
}

type CreateQuoteRequest struct {
	Quote    string `json:"quote"`
	Mood     string `json:"mood"`
	Category string `json:"category"`
}

type SetUserActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type AdminControllerInterface interface {
	GetStats(ctx context.Context) (*StatsResponse, error)
	SearchUsers(ctx context.Context, query string) ([]UserProfile, error)
	SetUserActive(ctx context.Context, userID uuid.UUID, request *SetUserActiveRequest) (*UserProfile, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	CreateQuote(ctx context.Context, request *CreateQuoteRequest) (*Quote, error)
	ListQuotes(ctx context.Context, limit int) ([]Quote, error)
	DeleteQuote(ctx context.Context, quoteID int) error
	TriggerDailyReset(ctx context.Context) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) AdminControllerInterface {
	return &AdminController{
		userRepo:           repos.User,
		habitRepo:          repos.Habit,
		habitLogRepo:       repos.HabitLog,
		quoteRepo:          repos.Quote,
		schedulerService:   services.Scheduler,
		transactionService: services.Transaction,
		db:                 db,
		log:                logger.New("adminController"),
	}
}

func (c *AdminController) GetStats(ctx context.Context) (*StatsResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("GetStats")

	totalUsers, err := c.userRepo.CountAll(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to count users", err)
	}

	doneToday, err := c.habitRepo.CountDone(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to count done habits", err)
	}

	completions, err := c.habitLogRepo.CountAll(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to count completions", err)
	}

	return &StatsResponse{
		TotalUsers:       totalUsers,
		HabitsDoneToday:  doneToday,
		TotalCompletions: completions,
	}, nil
}

func (c *AdminController) SearchUsers(ctx context.Context, query string) ([]UserProfile, error) {
	log := c.log.TraceFromContext(ctx).Function("SearchUsers")

	users, err := c.userRepo.Search(ctx, c.db.SQL, strings.TrimSpace(query), UserSearchLimit)
	if err != nil {
		return nil, log.Err("failed to search users", err)
	}

	profiles := make([]UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToProfile())
	}

	return profiles, nil
}

// SetUserActive bans or reinstates an account. Banned users cannot log in
// and are skipped by the nightly reset; their data stays put.
func (c *AdminController) SetUserActive(
	ctx context.Context,
	userID uuid.UUID,
	request *SetUserActiveRequest,
) (*UserProfile, error) {
	log := c.log.TraceFromContext(ctx).Function("SetUserActive")

	if request == nil {
		return nil, log.ErrorWithType(ErrValidation, "request body is required")
	}

	var profile UserProfile
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		user, err := c.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return err
		}

		user.IsActive = request.IsActive
		if err := c.userRepo.Update(ctx, tx, user); err != nil {
			return err
		}

		profile = user.ToProfile()
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "user not found", "userID", userID)
		}
		return nil, log.Err("failed to update user", err, "userID", userID)
	}

	log.Info("User active flag updated", "userID", userID, "isActive", request.IsActive)

	return &profile, nil
}

// DeleteUser removes the account and all of its data in one transaction.
func (c *AdminController) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteUser")

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := c.userRepo.GetByID(ctx, tx, userID); err != nil {
			return err
		}

		if err := c.userRepo.PurgeUserData(ctx, tx, userID); err != nil {
			return err
		}

		return c.userRepo.Delete(ctx, tx, userID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "user not found", "userID", userID)
		}
		return log.Err("failed to delete user", err, "userID", userID)
	}

	log.Info("User deleted", "userID", userID)

	return nil
}

func (c *AdminController) CreateQuote(
	ctx context.Context,
	request *CreateQuoteRequest,
) (*Quote, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateQuote")

	if request == nil || strings.TrimSpace(request.Quote) == "" {
		return nil, log.ErrorWithType(ErrValidation, "quote text is required")
	}
	if strings.TrimSpace(request.Mood) == "" {
		return nil, log.ErrorWithType(ErrValidation, "mood is required")
	}

	quote := &Quote{
		Quote:    request.Quote,
		Mood:     request.Mood,
		Category: request.Category,
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.quoteRepo.Create(ctx, tx, quote)
	})
	if err != nil {
		return nil, log.Err("failed to create quote", err)
	}

	return quote, nil
}

func (c *AdminController) ListQuotes(ctx context.Context, limit int) ([]Quote, error) {
	log := c.log.TraceFromContext(ctx).Function("ListQuotes")

	if limit <= 0 || limit > 200 {
		limit = 200
	}

	quotes, err := c.quoteRepo.List(ctx, c.db.SQL, limit)
	if err != nil {
		return nil, log.Err("failed to list quotes", err)
	}

	return quotes, nil
}

func (c *AdminController) DeleteQuote(ctx context.Context, quoteID int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteQuote")

	if quoteID <= 0 {
		return log.ErrorWithType(ErrValidation, "quoteId is required")
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.quoteRepo.Delete(ctx, tx, quoteID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "quote not found", "quoteID", quoteID)
		}
		return log.Err("failed to delete quote", err, "quoteID", quoteID)
	}

	return nil
}

// TriggerDailyReset re-runs the nightly job on demand. The job's own
// checkpoint makes this safe to call on a day that already completed.
func (c *AdminController) TriggerDailyReset(ctx context.Context) error {
	log := c.log.TraceFromContext(ctx).Function("TriggerDailyReset")

	if err := c.schedulerService.TriggerJobByName(ctx, "DailyHabitReset"); err != nil {
		return log.Err("failed to trigger daily reset", err)
	}

	return nil
}
