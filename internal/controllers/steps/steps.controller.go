package stepsController

import (
	"context"
	"errors"
	"time"
	"wellness360/internal/database"
	. "wellness360/internal/models"
	"wellness360/internal/repositories"
	"wellness360/internal/services"
	"wellness360/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MaxStepsPerSubmission = 200000
	DefaultHistoryDays    = 7
	MaxHistoryDays        = 90
)

var ErrValidation = errors.New("validation error")

type StepsController struct {
	stepsRepo          repositories.StepsRepository
	transactionService *services.TransactionService
	db                 database.DB
	location           *time.Location
	log                logger.Logger
}

type AddStepsRequest struct {
	Steps int  `json:"steps"`
	Goal  *int `json:"goal,omitempty"`
}

type SetGoalRequest struct {
	Goal int `json:"goal"`
}

// StepDay carries one day of steps with goal progress as a percentage,
// rounded to one decimal place and capped at 100.
type StepDay struct {
	Date     string          `json:"date"`
	Steps    int             `json:"steps"`
	Goal     int             `json:"goal"`
	Progress decimal.Decimal `json:"progress"`
	GoalMet  bool            `json:"goalMet"`
}

type StepsResponse struct {
	Today   StepDay   `json:"today"`
	History []StepDay `json:"history"`
}

type StepsControllerInterface interface {
	AddSteps(ctx context.Context, user *User, request *AddStepsRequest) (*StepDay, error)
	SetGoal(ctx context.Context, user *User, request *SetGoalRequest) (*StepDay, error)
	GetSteps(ctx context.Context, user *User, days int) (*StepsResponse, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) StepsControllerInterface {
	return &StepsController{
		stepsRepo:          repos.Steps,
		transactionService: services.Transaction,
		db:                 db,
		location:           services.Location,
		log:                logger.New("stepsController"),
	}
}

func progressFor(steps, goal int) decimal.Decimal {
	if goal <= 0 {
		return decimal.Zero
	}

	progress := decimal.NewFromInt(int64(steps)).
		Div(decimal.NewFromInt(int64(goal))).
		Mul(decimal.NewFromInt(100)).
		Round(1)

	hundred := decimal.NewFromInt(100)
	if progress.GreaterThan(hundred) {
		return hundred
	}
	return progress
}

func toStepDay(entry *StepEntry, date time.Time) StepDay {
	day := StepDay{
		Date:     utils.DateKey(date),
		Goal:     DefaultStepGoal,
		Progress: decimal.Zero,
	}
	if entry != nil {
		day.Steps = entry.Steps
		day.Goal = entry.Goal
		day.Progress = progressFor(entry.Steps, entry.Goal)
		day.GoalMet = entry.GoalMet()
	}
	return day
}

func (c *StepsController) today() time.Time {
	return utils.Today(time.Now(), c.location)
}

// AddSteps accumulates steps into today's entry. Submitting 2000 then 3000
// yields 5000 for the day.
func (c *StepsController) AddSteps(
	ctx context.Context,
	user *User,
	request *AddStepsRequest,
) (*StepDay, error) {
	log := c.log.TraceFromContext(ctx).Function("AddSteps")

	if request == nil || request.Steps <= 0 {
		return nil, log.ErrorWithType(ErrValidation, "steps must be positive")
	}
	if request.Steps > MaxStepsPerSubmission {
		return nil, log.ErrorWithType(ErrValidation, "steps out of range", "max", MaxStepsPerSubmission)
	}

	goal := DefaultStepGoal
	if request.Goal != nil {
		if *request.Goal <= 0 {
			return nil, log.ErrorWithType(ErrValidation, "goal must be positive")
		}
		goal = *request.Goal
	}

	today := c.today()

	var entry *StepEntry
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		newEntry := &StepEntry{
			UserID: user.ID,
			Date:   today,
			Steps:  request.Steps,
			Goal:   goal,
		}
		if err := c.stepsRepo.AddSteps(ctx, tx, newEntry); err != nil {
			return err
		}

		current, err := c.stepsRepo.GetForDate(ctx, tx, user.ID, today)
		if err != nil {
			return err
		}
		entry = current
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to add steps", err, "userID", user.ID)
	}

	day := toStepDay(entry, today)
	return &day, nil
}

func (c *StepsController) SetGoal(
	ctx context.Context,
	user *User,
	request *SetGoalRequest,
) (*StepDay, error) {
	log := c.log.TraceFromContext(ctx).Function("SetGoal")

	if request == nil || request.Goal <= 0 {
		return nil, log.ErrorWithType(ErrValidation, "goal must be positive")
	}

	today := c.today()

	var entry *StepEntry
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.stepsRepo.SetGoal(ctx, tx, user.ID, today, request.Goal); err != nil {
			return err
		}

		current, err := c.stepsRepo.GetForDate(ctx, tx, user.ID, today)
		if err != nil {
			return err
		}
		entry = current
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to set goal", err, "userID", user.ID)
	}

	day := toStepDay(entry, today)
	return &day, nil
}

func (c *StepsController) GetSteps(
	ctx context.Context,
	user *User,
	days int,
) (*StepsResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("GetSteps")

	if days <= 0 {
		days = DefaultHistoryDays
	}
	if days > MaxHistoryDays {
		return nil, log.ErrorWithType(ErrValidation, "days out of range", "max", MaxHistoryDays)
	}

	today := c.today()
	from := utils.AddDays(today, -(days - 1))

	entries, err := c.stepsRepo.History(ctx, c.db.SQL, user.ID, from, today)
	if err != nil {
		return nil, log.Err("failed to fetch step history", err, "userID", user.ID)
	}

	byDay := make(map[string]*StepEntry, len(entries))
	for i := range entries {
		byDay[utils.DateKey(entries[i].Date)] = &entries[i]
	}

	response := &StepsResponse{History: make([]StepDay, 0, days)}
	for day := from; !day.After(today); day = utils.AddDays(day, 1) {
		stepDay := toStepDay(byDay[utils.DateKey(day)], day)
		response.History = append(response.History, stepDay)
	}
	response.Today = response.History[len(response.History)-1]

	return response, nil
}
