package jobs

import (
	"context"
	"errors"

	"matchly/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type PopularityScanner interface {
	ScanAndNotify(ctx context.Context) (services.ScanReport, error)
}

type PopularUsersJob struct {
	scanner  PopularityScanner
	log      logger.Logger
	schedule services.Schedule
}

func NewPopularUsersJob(scanner PopularityScanner, schedule services.Schedule) *PopularUsersJob {
	return &PopularUsersJob{
		scanner:  scanner,
		log:      logger.New("popularUsersJob"),
		schedule: schedule,
	}
}

func (j *PopularUsersJob) Name() string {
	return "PopularUsersCheck"
}

// Execute runs one scan. Per-user delivery failures are logged but do not fail
// the job since those users are picked up again on the next run.
func (j *PopularUsersJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Checking for popular users")

	report, err := j.scanner.ScanAndNotify(ctx)
	if errors.Is(err, services.ErrScanInProgress) {
		log.Info("Another popularity scan is running, skipping")
		return nil
	}
	if err != nil {
		return log.Err("popular users check failed", err)
	}

	for _, result := range report.Results {
		if result.Err != nil {
			log.Warn(
				"Popular user not notified",
				"userID", result.UserID,
				"likeCount", result.LikeCount,
				"error", result.Err,
			)
		}
	}

	log.Info(
		"Popular users check completed",
		"selected", report.Selected,
		"notified", report.Notified,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	return nil
}

func (j *PopularUsersJob) Schedule() services.Schedule {
	return j.schedule
}
