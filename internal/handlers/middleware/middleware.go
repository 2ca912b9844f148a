package middleware

import (
	"wellness360/config"
	"wellness360/internal/database"
	"wellness360/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB       database.DB
	userRepo repositories.UserRepository
	Config   config.Config
	log      logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	repos repositories.Repository,
) Middleware {
	return Middleware{
		DB:       db,
		userRepo: repos.User,
		Config:   config,
		log:      logger.New("middleware"),
	}
}
