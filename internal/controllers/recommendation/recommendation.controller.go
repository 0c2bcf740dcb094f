package recommendationController

import (
	"context"

	"matchly/internal/database"
	. "matchly/internal/models"
	"matchly/internal/repositories"
	"matchly/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

type RecommendationController struct {
	userRepo repositories.UserRepository
	db       database.DB
	log      logger.Logger
}

type RecommendationControllerInterface interface {
	ListRecommendations(
		ctx context.Context,
		user *User,
		page int,
	) (types.PageResult[*User], error)
}

func New(repos repositories.Repository, db database.DB) RecommendationControllerInterface {
	return &RecommendationController{
		userRepo: repos.User,
		db:       db,
		log:      logger.New("recommendationController"),
	}
}

// ListRecommendations returns users the caller has never swiped on, in a
// stable order, RecommendationsPerPage at a time.
func (c *RecommendationController) ListRecommendations(
	ctx context.Context,
	user *User,
	page int,
) (types.PageResult[*User], error) {
	log := c.log.TraceFromContext(ctx).Function("ListRecommendations")

	result, err := c.userRepo.ListRecommendations(
		ctx,
		c.db.SQLWithContext(ctx),
		user.ID,
		types.NewPage(page, types.RecommendationsPerPage),
	)
	if err != nil {
		return result, err
	}

	log.Debug("recommendations listed", "userID", user.ID, "page", result.Page.Number, "total", result.Total)
	return result, nil
}
