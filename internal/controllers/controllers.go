package controllers

import (
	"matchly/internal/database"
	"matchly/internal/repositories"
	"matchly/internal/services"

	authController "matchly/internal/controllers/auth"
	recommendationController "matchly/internal/controllers/recommendation"
	swipeController "matchly/internal/controllers/swipes"
	userController "matchly/internal/controllers/users"
)

type Controllers struct {
	Auth           authController.AuthControllerInterface
	User           userController.UserControllerInterface
	Recommendation recommendationController.RecommendationControllerInterface
	Swipe          swipeController.SwipeControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:           authController.New(services, repos, db),
		User:           userController.New(repos, db),
		Recommendation: recommendationController.New(repos, db),
		Swipe:          swipeController.New(repos, db),
	}
}
