package app

import (
	"context"

	"matchly/config"
	"matchly/internal/controllers"
	"matchly/internal/database"
	"matchly/internal/handlers/middleware"
	"matchly/internal/jobs"
	"matchly/internal/repositories"
	"matchly/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Config      config.Config
	Registry    *prometheus.Registry
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
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

	app, err := Build(db, config)
	if err != nil {
		_ = db.Close()
		return &App{}, err
	}

	return app, nil
}

// Build wires an App around an open database.
func Build(db database.DB, config config.Config) (*App, error) {
	log := logger.New("app").Function("Build")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	repos := repositories.New(db)
	service := services.New(db, repos, config, registry)

	if err := jobs.RegisterAllJobs(service.Scheduler, config, service); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	app := &App{
		Database:    db,
		Middleware:  middleware.New(db, config, repos, service),
		Config:      config,
		Registry:    registry,
		Services:    service,
		Repos:       repos,
		Controllers: controllers.New(service, repos, db),
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
		a.Services.Auth,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.Notifier,
		a.Services.Popularity,
		a.Repos.User,
		a.Repos.Swipe,
		a.Repos.PopularityNotification,
		a.Controllers.Auth,
		a.Controllers.User,
		a.Controllers.Recommendation,
		a.Controllers.Swipe,
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
