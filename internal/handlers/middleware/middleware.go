package middleware

import (
	"matchly/config"
	"matchly/internal/database"
	"matchly/internal/repositories"
	"matchly/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB          database.DB
	userRepo    repositories.UserRepository
	authService *services.AuthService
	Config      config.Config
	log         logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	repos repositories.Repository,
	services services.Service,
) Middleware {
	return Middleware{
		DB:          db,
		userRepo:    repos.User,
		authService: services.Auth,
		Config:      config,
		log:         logger.New("middleware"),
	}
}
