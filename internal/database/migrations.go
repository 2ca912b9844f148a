package database

import (
	"wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Habit{},
		&models.HabitLog{},
		&models.JobRun{},
		&models.Todo{},
		&models.MoodEntry{},
		&models.StepEntry{},
		&models.ExerciseLog{},
		&models.Quote{},
		&models.ChatMessage{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}
