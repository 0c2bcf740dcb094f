package jobs

import (
	"matchly/config"
	"matchly/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	service services.Service,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	popularUsersJob := NewPopularUsersJob(service.Popularity, services.Daily)
	if err := schedulerService.AddJob(popularUsersJob); err != nil {
		return log.Err("failed to register popular users job", err)
	}
	log.Info("Registered popular users job", "schedule", popularUsersJob.Schedule())

	return nil
}
