package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"matchly/internal/database"
	"matchly/internal/models"
	"matchly/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// PopularityThreshold is exclusive: a user needs strictly more likes.
	PopularityThreshold int64 = 50

	popularityLockKey = "popular-users-scan"
	popularityLockTTL = 30 * time.Minute
)

var ErrScanInProgress = errors.New("popularity scan already in progress")

// RunLocker keeps two scans from overlapping across processes.
type RunLocker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error)
}

type NotificationResult struct {
	UserID    int
	Name      string
	LikeCount int64
	Sent      bool
	Marked    bool
	// Skipped is set when the user was already marked by the time it was
	// reached; nothing is sent or recorded.
	Skipped bool
	Err     error
}

type ScanReport struct {
	Selected   int
	Notified   int
	Failed     int
	Skipped    int
	Results    []NotificationResult
	StartedAt  time.Time
	FinishedAt time.Time
}

func (r ScanReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

type PopularityService struct {
	db          database.DB
	repos       repositories.Repository
	transaction *TransactionService
	notifier    Notifier
	locker      RunLocker
	metrics     *PopularityMetrics
	recipient   string
	threshold   int64
	log         logger.Logger
	now         func() time.Time
}

func NewPopularityService(
	db database.DB,
	repos repositories.Repository,
	transaction *TransactionService,
	notifier Notifier,
	locker RunLocker,
	metrics *PopularityMetrics,
	recipient string,
) *PopularityService {
	return &PopularityService{
		db:          db,
		repos:       repos,
		transaction: transaction,
		notifier:    notifier,
		locker:      locker,
		metrics:     metrics,
		recipient:   recipient,
		threshold:   PopularityThreshold,
		log:         logger.New("PopularityService"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ScanAndNotify notifies the admin once about every user whose like count has
// crossed the threshold. Per-user failures are reported in the results and
// leave the user eligible for the next run; only a failed selection or a held
// run lock is returned as an error.
func (ps *PopularityService) ScanAndNotify(ctx context.Context) (ScanReport, error) {
	log := ps.log.TraceFromContext(ctx).Function("ScanAndNotify")

	release, acquired, err := ps.locker.AcquireLock(ctx, popularityLockKey, popularityLockTTL)
	if err != nil {
		return ScanReport{}, log.Err("failed to acquire scan lock", err)
	}
	if !acquired {
		log.Warn("Popularity scan skipped, another run holds the lock")
		return ScanReport{}, ErrScanInProgress
	}
	defer release()

	report := ScanReport{StartedAt: ps.now(), Results: []NotificationResult{}}
	defer func() {
		ps.metrics.observeScan(report.Duration().Seconds())
	}()

	candidates, err := ps.repos.User.FindPopularCandidates(ctx, ps.db.SQLWithContext(ctx), ps.threshold)
	if err != nil {
		report.FinishedAt = ps.now()
		return report, log.Err("failed to select popular users", err)
	}

	report.Selected = len(candidates)
	log.Info("Found popular users to notify", "count", report.Selected, "threshold", ps.threshold)

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			log.Warn("Popularity scan cancelled", "remaining", report.Selected-len(report.Results))
			break
		}

		result := ps.notifyOne(ctx, candidate)
		switch {
		case result.Err != nil:
			report.Failed++
		case result.Skipped:
			report.Skipped++
		default:
			report.Notified++
		}
		report.Results = append(report.Results, result)
	}

	report.FinishedAt = ps.now()
	log.Info(
		"Popularity scan completed",
		"selected", report.Selected,
		"notified", report.Notified,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"duration", report.Duration(),
	)

	return report, nil
}

func (ps *PopularityService) notifyOne(
	ctx context.Context,
	candidate models.PopularUser,
) NotificationResult {
	log := ps.log.TraceFromContext(ctx).Function("notifyOne")

	result := NotificationResult{
		UserID:    candidate.ID,
		Name:      candidate.Name,
		LikeCount: candidate.LikeCount,
	}

	notice := PopularUserNotice{
		Recipient: ps.recipient,
		UserID:    candidate.ID,
		Name:      candidate.Name,
		Email:     candidate.Email,
		Age:       candidate.Age,
		LikeCount: candidate.LikeCount,
		Threshold: ps.threshold,
		SentAt:    ps.now(),
	}

	if !ps.prepareNotice(ctx, &notice) {
		result.Skipped = true
		log.Info("User already marked, skipping", "userID", candidate.ID)
		return result
	}

	if err := ps.notifier.Notify(ctx, notice); err != nil {
		result.Err = err
		ps.metrics.observeNotification(string(models.NotificationStatusFailed))
		log.Er("Failed to notify admin about popular user", err, "userID", candidate.ID)
		if auditErr := ps.recordAttempt(ctx, ps.db.SQLWithContext(ctx), notice, err); auditErr != nil {
			log.Warn("failed to record failed attempt", "userID", candidate.ID, "error", auditErr)
		}
		return result
	}

	result.Sent = true
	ps.metrics.observeNotification(string(models.NotificationStatusSent))

	err := ps.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		marked, err := ps.repos.User.MarkPopularNotified(ctx, tx, candidate.ID, notice.SentAt)
		if err != nil {
			return err
		}
		result.Marked = marked

		return ps.recordAttempt(ctx, tx, notice, nil)
	})
	if err != nil {
		// The admin already has the email; the next run will send it again.
		result.Err = fmt.Errorf("failed to mark user %d as notified: %w", candidate.ID, err)
		log.Er("Notification sent but user not marked", err, "userID", candidate.ID)
		return result
	}

	if !result.Marked {
		log.Warn("User was already marked by another run", "userID", candidate.ID)
	}

	log.Info("Popular user notified", "userID", candidate.ID, "likeCount", candidate.LikeCount)
	return result
}

// prepareNotice adds the display picture and the number of earlier failed
// attempts to notice. It returns false when the user has been marked since
// selection. Lookup failures only cost the extra details.
func (ps *PopularityService) prepareNotice(ctx context.Context, notice *PopularUserNotice) bool {
	log := ps.log.TraceFromContext(ctx).Function("prepareNotice")
	tx := ps.db.SQLWithContext(ctx)

	profile, err := ps.repos.User.GetByID(ctx, tx, notice.UserID)
	switch {
	case err != nil:
		log.Warn("failed to load profile for notice", "userID", notice.UserID, "error", err)
	case profile.IsPopularNotified():
		return false
	default:
		if picture := profile.DisplayPicture(); picture != nil {
			notice.Picture = picture.PicturePath
		}
	}

	attempts, err := ps.repos.PopularityNotification.ListByUser(ctx, tx, notice.UserID)
	if err != nil {
		log.Warn("failed to load earlier attempts", "userID", notice.UserID, "error", err)
		return true
	}

	for _, attempt := range attempts {
		if attempt.Status == models.NotificationStatusFailed {
			notice.PreviousFailures++
		}
	}

	return true
}

func (ps *PopularityService) recordAttempt(
	ctx context.Context,
	tx *gorm.DB,
	notice PopularUserNotice,
	sendErr error,
) error {
	payload, err := json.Marshal(map[string]any{
		"subject":    notice.Subject(),
		"user_id":    notice.UserID,
		"like_count": notice.LikeCount,
		"threshold":  notice.Threshold,
		"picture":    notice.Picture,
		"sent_at":    notice.SentAt,
	})
	if err != nil {
		return err
	}

	attempt := &models.PopularityNotification{
		UserID:      notice.UserID,
		LikeCount:   notice.LikeCount,
		Recipient:   notice.Recipient,
		Status:      models.NotificationStatusSent,
		Payload:     datatypes.JSON(payload),
		AttemptedAt: notice.SentAt,
	}
	if sendErr != nil {
		message := sendErr.Error()
		attempt.Status = models.NotificationStatusFailed
		attempt.Error = &message
	}

	return ps.repos.PopularityNotification.Create(ctx, tx, attempt)
}
