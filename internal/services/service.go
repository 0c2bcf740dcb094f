package services

import (
	"matchly/config"
	"matchly/internal/database"
	"matchly/internal/repositories"

	"github.com/prometheus/client_golang/prometheus"
)

type Service struct {
	Auth        *AuthService
	Transaction *TransactionService
	Scheduler   *SchedulerService
	Notifier    Notifier
	Popularity  *PopularityService
}

func New(
	db database.DB,
	repos repositories.Repository,
	config config.Config,
	registerer prometheus.Registerer,
) Service {
	transactionService := NewTransactionService(db)
	notifier := NewNotifier(config)
	popularityService := NewPopularityService(
		db,
		repos,
		transactionService,
		notifier,
		&db,
		NewPopularityMetrics(registerer),
		config.AdminEmail,
	)

	return Service{
		Auth:        NewAuthService(config),
		Transaction: transactionService,
		Scheduler:   NewSchedulerService(),
		Notifier:    notifier,
		Popularity:  popularityService,
	}
}
