package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-co-op/gocron"
)

type Schedule int

const (
	Hourly          Schedule = iota
	Daily                    // 02:00 UTC every day
	DailyProcessing          // 03:00 UTC every day
)

func (s Schedule) String() string {
	switch s {
	case Hourly:
		return "hourly"
	case Daily:
		return "daily@02:00"
	case DailyProcessing:
		return "daily@03:00"
	default:
		return fmt.Sprintf("schedule(%d)", int(s))
	}
}

var ErrJobNotFound = errors.New("job not found")

// Job represents a scheduled task that can be executed by the scheduler
type Job interface {
	Name() string
	// Execute runs the job. The context is cancelled when the scheduler stops.
	Execute(ctx context.Context) error
	Schedule() Schedule
}

type SchedulerService struct {
	scheduler *gocron.Scheduler
	jobs      map[string]Job
	log       logger.Logger
	started   bool
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewSchedulerService() *SchedulerService {
	scheduler := gocron.NewScheduler(time.UTC)
	// A job still running when its next tick arrives skips that tick.
	scheduler.SingletonModeAll()

	ctx, cancel := context.WithCancel(context.Background())

	return &SchedulerService{
		scheduler: scheduler,
		jobs:      make(map[string]Job),
		log:       logger.New("scheduler"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *SchedulerService) runJob(ctx context.Context, job Job) error {
	log := s.log.Function("runJob")

	start := time.Now()
	log.Info("Executing job", "job", job.Name())
	if err := job.Execute(ctx); err != nil {
		return log.Err("Job execution failed", err, "job", job.Name(), "duration", time.Since(start))
	}

	log.Info("Job execution completed", "job", job.Name(), "duration", time.Since(start))
	return nil
}

func (s *SchedulerService) every(schedule Schedule) (*gocron.Scheduler, error) {
	switch schedule {
	case Hourly:
		return s.scheduler.Every(1).Hour(), nil
	case Daily:
		return s.scheduler.Every(1).Day().At("02:00"), nil
	case DailyProcessing:
		return s.scheduler.Every(1).Day().At("03:00"), nil
	default:
		return nil, fmt.Errorf("unknown schedule %s", schedule)
	}
}

// AddJob registers a job with the scheduler. Job names must be unique.
func (s *SchedulerService) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("AddJob")

	if _, exists := s.jobs[job.Name()]; exists {
		return log.Error("job already registered", "job", job.Name())
	}

	timing, err := s.every(job.Schedule())
	if err != nil {
		return log.Err("failed to register job with scheduler", err, "job", job.Name())
	}

	_, err = timing.Tag(job.Name()).Do(func() {
		_ = s.runJob(s.ctx, job)
	})
	if err != nil {
		return log.Err("failed to register job with scheduler", err, "job", job.Name())
	}

	s.jobs[job.Name()] = job
	log.Info("Job registered", "job", job.Name(), "schedule", job.Schedule())

	return nil
}

func (s *SchedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("Start")

	if s.started {
		log.Info("Scheduler already started")
		return nil
	}

	if len(s.jobs) == 0 {
		log.Info("No jobs registered, scheduler will not start")
		return nil
	}

	s.scheduler.StartAsync()
	s.started = true

	for _, job := range s.scheduler.Jobs() {
		log.Info("Job scheduled", "tags", job.Tags(), "nextRun", job.NextRun())
	}

	log.Info("Scheduler started", "jobCount", len(s.jobs))
	return nil
}

// Stop cancels running jobs and waits for the scheduler to wind down.
func (s *SchedulerService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("Stop")

	if !s.started {
		log.Info("Scheduler not started, nothing to stop")
		return nil
	}

	s.cancel()
	s.scheduler.Stop()
	s.started = false

	log.Info("Scheduler stopped")
	return nil
}

func (s *SchedulerService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *SchedulerService) GetJobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// GetNextRunTime returns the earliest next run across jobs, or nil when the
// scheduler is not running.
func (s *SchedulerService) GetNextRunTime() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	var next *time.Time
	for _, job := range s.scheduler.Jobs() {
		run := job.NextRun()
		if next == nil || run.Before(*next) {
			next = &run
		}
	}

	return next
}

// TriggerJobByName runs a registered job right away and waits for it.
func (s *SchedulerService) TriggerJobByName(ctx context.Context, jobName string) error {
	s.mu.Lock()
	job, ok := s.jobs[jobName]
	s.mu.Unlock()

	if !ok {
		err := fmt.Errorf("%w: %s", ErrJobNotFound, jobName)
		s.log.Function("TriggerJobByName").Er("job not found", err, "job", jobName)
		return err
	}

	return s.runJob(ctx, job)
}
