package repositories

import (
	"context"

	. "matchly/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type SwipeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, swipe *Swipe) error
}

type swipeRepository struct {
	log logger.Logger
}

func NewSwipeRepository() SwipeRepository {
	return &swipeRepository{
		log: logger.New("swipeRepository"),
	}
}

func (r *swipeRepository) Create(ctx context.Context, tx *gorm.DB, swipe *Swipe) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := gorm.G[Swipe](tx).Create(ctx, swipe); err != nil {
		return log.Err(
			"failed to create swipe",
			err,
			"swiperID",
			swipe.SwiperID,
			"swipedID",
			swipe.SwipedID,
		)
	}

	return nil
}
