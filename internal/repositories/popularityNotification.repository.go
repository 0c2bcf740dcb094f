package repositories

import (
	"context"

	. "matchly/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type PopularityNotificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, notification *PopularityNotification) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID int) ([]PopularityNotification, error)
}

type popularityNotificationRepository struct {
	log logger.Logger
}

func NewPopularityNotificationRepository() PopularityNotificationRepository {
	return &popularityNotificationRepository{
		log: logger.New("popularityNotificationRepository"),
	}
}

func (r *popularityNotificationRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	notification *PopularityNotification,
) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := gorm.G[PopularityNotification](tx).Create(ctx, notification); err != nil {
		return log.Err(
			"failed to record popularity notification",
			err,
			"userID",
			notification.UserID,
			"status",
			notification.Status,
		)
	}

	return nil
}

func (r *popularityNotificationRepository) ListByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID int,
) ([]PopularityNotification, error) {
	log := r.log.TraceFromContext(ctx).Function("ListByUser")

	notifications, err := gorm.G[PopularityNotification](tx).
		Where("user_id = ?", userID).
		Order("attempted_at ASC, id ASC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list popularity notifications", err, "userID", userID)
	}

	return notifications, nil
}
