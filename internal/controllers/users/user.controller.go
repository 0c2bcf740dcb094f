package userController

import (
	"context"

	"matchly/internal/database"
	. "matchly/internal/models"
	"matchly/internal/repositories"
	"matchly/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

type UserController struct {
	userRepo repositories.UserRepository
	db       database.DB
	log      logger.Logger
}

type UserControllerInterface interface {
	GetProfile(ctx context.Context, user *User) (*User, error)
	ListLiked(ctx context.Context, user *User, page int) (types.PageResult[*User], error)
}

func New(repos repositories.Repository, db database.DB) UserControllerInterface {
	return &UserController{
		userRepo: repos.User,
		db:       db,
		log:      logger.New("userController"),
	}
}

func (uc *UserController) GetProfile(ctx context.Context, user *User) (*User, error) {
	log := uc.log.TraceFromContext(ctx).Function("GetProfile")

	profile, err := uc.userRepo.GetByID(ctx, uc.db.SQLWithContext(ctx), user.ID)
	if err != nil {
		return nil, log.Err("failed to load profile", err, "userID", user.ID)
	}

	return profile, nil
}

// ListLiked returns the distinct users the caller has liked, LikedPerPage at
// a time.
func (uc *UserController) ListLiked(
	ctx context.Context,
	user *User,
	page int,
) (types.PageResult[*User], error) {
	return uc.userRepo.ListLiked(
		ctx,
		uc.db.SQLWithContext(ctx),
		user.ID,
		types.NewPage(page, types.LikedPerPage),
	)
}
