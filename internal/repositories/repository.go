package repositories

import (
	"wellness360/internal/database"
)

type Repository struct {
	User     UserRepository
	Habit    HabitRepository
	HabitLog HabitLogRepository
	JobRun   JobRunRepository
	Todo     TodoRepository
	Mood     MoodRepository
	Steps    StepsRepository
	Exercise ExerciseRepository
	Quote    QuoteRepository
	Chat     ChatRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:     NewUserRepository(db),
		Habit:    NewHabitRepository(db),
		HabitLog: NewHabitLogRepository(),
		JobRun:   NewJobRunRepository(),
		Todo:     NewTodoRepository(),
		Mood:     NewMoodRepository(),
		Steps:    NewStepsRepository(),
		Exercise: NewExerciseRepository(),
		Quote:    NewQuoteRepository(),
		Chat:     NewChatRepository(),
	}
}
