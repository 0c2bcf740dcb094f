package swipeController

import (
	"context"
	"strings"

	"matchly/internal/database"
	. "matchly/internal/models"
	"matchly/internal/repositories"
	"matchly/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	msgSwipedIDRequired = "The swiped id field is required."
	msgSwipedIDInvalid  = "The selected swiped id is invalid."
	msgActionRequired   = "The action field is required."
	msgActionInvalid    = "The selected action is invalid."
)

type SwipeController struct {
	userRepo  repositories.UserRepository
	swipeRepo repositories.SwipeRepository
	db        database.DB
	log       logger.Logger
}

type SwipeControllerInterface interface {
	RecordSwipe(ctx context.Context, user *User, req types.SwipeRequest) (*Swipe, error)
}

func New(repos repositories.Repository, db database.DB) SwipeControllerInterface {
	return &SwipeController{
		userRepo:  repos.User,
		swipeRepo: repos.Swipe,
		db:        db,
		log:       logger.New("swipeController"),
	}
}

// RecordSwipe appends a swipe by user. The target must exist; swiping on
// yourself or on someone already swiped is accepted.
func (sc *SwipeController) RecordSwipe(
	ctx context.Context,
	user *User,
	req types.SwipeRequest,
) (*Swipe, error) {
	log := sc.log.TraceFromContext(ctx).Function("RecordSwipe")
	tx := sc.db.SQLWithContext(ctx)

	validation := types.NewValidationError()

	switch {
	case !req.SwipedID.Present:
		validation.Add("swiped_id", msgSwipedIDRequired)
	case !req.SwipedID.Valid:
		validation.Add("swiped_id", msgSwipedIDInvalid)
	default:
		exists, err := sc.userRepo.Exists(ctx, tx, req.SwipedID.Value)
		if err != nil {
			return nil, log.Err("failed to check swipe target", err, "swipedID", req.SwipedID.Value)
		}
		if !exists {
			validation.Add("swiped_id", msgSwipedIDInvalid)
		}
	}

	action := SwipeAction(strings.TrimSpace(req.Action))
	switch {
	case action == "":
		validation.Add("action", msgActionRequired)
	case !action.IsValid():
		validation.Add("action", msgActionInvalid)
	}

	if validation.HasErrors() {
		return nil, validation
	}

	swipe := &Swipe{
		SwiperID: user.ID,
		SwipedID: req.SwipedID.Value,
		Action:   action,
	}
	if err := sc.swipeRepo.Create(ctx, tx, swipe); err != nil {
		return nil, err
	}

	log.Info("swipe recorded", "swiperID", swipe.SwiperID, "swipedID", swipe.SwipedID, "action", swipe.Action)
	return swipe, nil
}
