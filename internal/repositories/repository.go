package repositories

import (
	"matchly/internal/database"
)

type Repository struct {
	User                   UserRepository
	Swipe                  SwipeRepository
	PopularityNotification PopularityNotificationRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:                   NewUserRepository(db.Cache.User),
		Swipe:                  NewSwipeRepository(),
		PopularityNotification: NewPopularityNotificationRepository(),
	}
}
