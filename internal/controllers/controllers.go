package controllers

import (
	"wellness360/internal/database"
	"wellness360/internal/repositories"
	"wellness360/internal/services"

	adminController "wellness360/internal/controllers/admin"
	authController "wellness360/internal/controllers/auth"
	chatController "wellness360/internal/controllers/chat"
	exerciseController "wellness360/internal/controllers/exercises"
	habitController "wellness360/internal/controllers/habits"
	moodController "wellness360/internal/controllers/moods"
	quoteController "wellness360/internal/controllers/quotes"
	stepsController "wellness360/internal/controllers/steps"
	todoController "wellness360/internal/controllers/todos"
)

type Controllers struct {
	Auth     authController.AuthControllerInterface
	Habit    habitController.HabitControllerInterface
	Todo     todoController.TodoControllerInterface
	Mood     moodController.MoodControllerInterface
	Steps    stepsController.StepsControllerInterface
	Exercise exerciseController.ExerciseControllerInterface
	Quote    quoteController.QuoteControllerInterface
	Chat     chatController.ChatControllerInterface
	Admin    adminController.AdminControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:     authController.New(repos, services, db),
		Habit:    habitController.New(repos, services, db),
		Todo:     todoController.New(repos, services, db),
		Mood:     moodController.New(repos, services, db),
		Steps:    stepsController.New(repos, services, db),
		Exercise: exerciseController.New(repos, services, db),
		Quote:    quoteController.New(repos, db),
		Chat:     chatController.New(repos, services, db),
		Admin:    adminController.New(repos, services, db),
	}
}
