package services

import (
	"time"
	"wellness360/config"
	"wellness360/internal/database"
	"wellness360/internal/repositories"
)

type Service struct {
	Transaction *TransactionService
	Scheduler   *SchedulerService
	Session     *SessionService
	Streak      *StreakService
	HabitReset  *HabitResetService
	Chat        *ChatService

	// Location is the timezone every calendar-day boundary is anchored to,
	// resolved once at startup so a bad TIMEZONE fails the boot instead of
	// being silently papered over downstream.
	Location *time.Location
}

func New(db database.DB, config config.Config, repos repositories.Repository) (Service, error) {
	location, err := config.Location()
	if err != nil {
		return Service{}, err
	}

	transactionService := NewTransactionService(db)
	schedulerService := NewSchedulerService(location)
	sessionService := NewSessionService(config, db)
	streakService := NewStreakService(repos.HabitLog)
	habitResetService := NewHabitResetService(transactionService, repos, location)
	chatService := NewChatService(config)

	return Service{
		Transaction: transactionService,
		Scheduler:   schedulerService,
		Session:     sessionService,
		Streak:      streakService,
		HabitReset:  habitResetService,
		Chat:        chatService,
		Location:    location,
	}, nil
}
