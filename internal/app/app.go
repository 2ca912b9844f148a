package app

import (
	"context"
	"wellness360/config"
	"wellness360/internal/controllers"
	"wellness360/internal/database"
	"wellness360/internal/handlers/middleware"
	"wellness360/internal/jobs"
	"wellness360/internal/repositories"
	"wellness360/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database     database.DB
	Middleware   middleware.Middleware
	Config       config.Config
	Services     services.Service
	Repositories repositories.Repository
	Controllers  controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	repos := repositories.New(db)

	service, err := services.New(db, config, repos)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	middleware := middleware.New(db, config, repos)
	controllers := controllers.New(service, repos, db)

	if config.SchedulerEnabled {
		if err := jobs.RegisterAllJobs(service.Scheduler, config, service); err != nil {
			return &App{}, log.Err("failed to register jobs", err)
		}
		if err := service.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	} else {
		log.Info("Scheduler disabled by configuration")
	}

	app := &App{
		Database:     db,
		Middleware:   middleware,
		Config:       config,
		Services:     service,
		Repositories: repos,
		Controllers:  controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.Session,
		a.Services.Streak,
		a.Services.HabitReset,
		a.Services.Chat,
		a.Controllers.Auth,
		a.Controllers.Habit,
		a.Controllers.Todo,
		a.Controllers.Mood,
		a.Controllers.Steps,
		a.Controllers.Exercise,
		a.Controllers.Quote,
		a.Controllers.Chat,
		a.Controllers.Admin,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
