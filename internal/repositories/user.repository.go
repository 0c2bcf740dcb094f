package repositories

import (
	"context"
	"errors"
	"time"

	"matchly/internal/constants"
	"matchly/internal/database"
	. "matchly/internal/models"
	"matchly/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error)
	Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, user *User) error
	ListRecommendations(
		ctx context.Context,
		tx *gorm.DB,
		userID int,
		page types.Page,
	) (types.PageResult[*User], error)
	ListLiked(
		ctx context.Context,
		tx *gorm.DB,
		userID int,
		page types.Page,
	) (types.PageResult[*User], error)
	FindPopularCandidates(ctx context.Context, tx *gorm.DB, threshold int64) ([]PopularUser, error)
	MarkPopularNotified(ctx context.Context, tx *gorm.DB, id int, at time.Time) (bool, error)
	ClearUserCache(ctx context.Context, id int) error
}

type userRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewUserRepository(cache database.CacheClient) UserRepository {
	return &userRepository{
		cache: cache,
		log:   logger.New("userRepository"),
	}
}

func orderedPictures(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*User, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var user User
	if r.cache != nil {
		found, err := database.NewCacheBuilder(r.cache, id).
			WithContext(ctx).
			WithTimeout(constants.UserCacheTimeout).
			WithHash(constants.UserCachePrefix).
			Get(&user)
		if err != nil {
			log.Warn("failed to get user from cache", "userID", id, "error", err)
		}

		if found {
			return &user, nil
		}
	}

	err := tx.WithContext(ctx).
		Preload("Pictures", orderedPictures).
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, log.Err("failed to get user by id", err, "userID", id)
	}

	if r.cache != nil {
		err = database.NewCacheBuilder(r.cache, id).
			WithContext(ctx).
			WithTimeout(constants.UserCacheTimeout).
			WithHash(constants.UserCachePrefix).
			WithStruct(user).
			WithTTL(constants.UserCacheExpiry).
			Set()
		if err != nil {
			log.Warn("failed to add user to cache", "userID", id, "error", err)
		}
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(
	ctx context.Context,
	tx *gorm.DB,
	email string,
) (*User, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByEmail")

	user, err := gorm.G[User](tx).Where("email = ?", email).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, log.Err("failed to get user by email", err)
	}

	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("Exists")

	var count int64
	if err := tx.WithContext(ctx).Model(&User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, log.Err("failed to check user existence", err, "userID", id)
	}

	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := gorm.G[User](tx).Create(ctx, user); err != nil {
		return log.Err("failed to create user", err, "email", user.Email)
	}

	return nil
}

// ListRecommendations pages through every user the viewer has not swiped on
// yet, excluding the viewer, in ascending id order.
func (r *userRepository) ListRecommendations(
	ctx context.Context,
	tx *gorm.DB,
	userID int,
	page types.Page,
) (types.PageResult[*User], error) {
	log := r.log.TraceFromContext(ctx).Function("ListRecommendations")

	notSwiped := func(db *gorm.DB) *gorm.DB {
		return db.
			Where("users.id <> ?", userID).
			Where("users.id NOT IN (SELECT swiped_id FROM swipes WHERE swiper_id = ?)", userID)
	}

	result, err := r.paginate(ctx, tx, notSwiped, page)
	if err != nil {
		return result, log.Err("failed to list recommendations", err, "userID", userID, "page", page.Number)
	}

	return result, nil
}

// ListLiked pages through the distinct users the viewer has liked.
func (r *userRepository) ListLiked(
	ctx context.Context,
	tx *gorm.DB,
	userID int,
	page types.Page,
) (types.PageResult[*User], error) {
	log := r.log.TraceFromContext(ctx).Function("ListLiked")

	liked := func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"users.id IN (SELECT swiped_id FROM swipes WHERE swiper_id = ? AND action = ?)",
			userID,
			string(SwipeActionLike),
		)
	}

	result, err := r.paginate(ctx, tx, liked, page)
	if err != nil {
		return result, log.Err("failed to list liked users", err, "userID", userID, "page", page.Number)
	}

	return result, nil
}

func (r *userRepository) paginate(
	ctx context.Context,
	tx *gorm.DB,
	scope func(*gorm.DB) *gorm.DB,
	page types.Page,
) (types.PageResult[*User], error) {
	result := types.PageResult[*User]{Page: page, Items: []*User{}}

	if err := tx.WithContext(ctx).Model(&User{}).Scopes(scope).Count(&result.Total).Error; err != nil {
		return result, err
	}

	if result.Total == 0 || int64(page.Offset()) >= result.Total {
		return result, nil
	}

	err := tx.WithContext(ctx).
		Scopes(scope).
		Preload("Pictures", orderedPictures).
		Order("users.id ASC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&result.Items).Error

	return result, err
}

// FindPopularCandidates returns users not yet flagged whose received like
// count is strictly greater than threshold, in ascending id order.
func (r *userRepository) FindPopularCandidates(
	ctx context.Context,
	tx *gorm.DB,
	threshold int64,
) ([]PopularUser, error) {
	log := r.log.TraceFromContext(ctx).Function("FindPopularCandidates")

	candidates := []PopularUser{}
	err := tx.WithContext(ctx).
		Model(&User{}).
		Select("users.id, users.name, users.email, users.age, COUNT(swipes.id) AS like_count").
		Joins("JOIN swipes ON swipes.swiped_id = users.id AND swipes.action = ?", string(SwipeActionLike)).
		Where("users.popular_notified_at IS NULL").
		Group("users.id, users.name, users.email, users.age").
		Having("COUNT(swipes.id) > ?", threshold).
		Order("users.id ASC").
		Scan(&candidates).Error
	if err != nil {
		return nil, log.Err("failed to find popular candidates", err, "threshold", threshold)
	}

	return candidates, nil
}

// MarkPopularNotified sets the notified marker only if it is still unset and
// reports whether this call was the one that set it.
func (r *userRepository) MarkPopularNotified(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	at time.Time,
) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("MarkPopularNotified")

	rowsAffected, err := gorm.G[User](tx).
		Where("id = ? AND popular_notified_at IS NULL", id).
		Update(ctx, "popular_notified_at", at)
	if err != nil {
		return false, log.Err("failed to mark user as popular notified", err, "userID", id)
	}

	if rowsAffected > 0 {
		if err := r.ClearUserCache(ctx, id); err != nil {
			log.Warn("failed to clear user cache after mark", "userID", id, "error", err)
		}
	}

	return rowsAffected > 0, nil
}

func (r *userRepository) ClearUserCache(ctx context.Context, id int) error {
	if r.cache == nil {
		return nil
	}

	return database.NewCacheBuilder(r.cache, id).
		WithContext(ctx).
		WithHash(constants.UserCachePrefix).
		Delete()
}
