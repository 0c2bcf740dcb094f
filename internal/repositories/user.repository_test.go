package repositories_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"matchly/internal/database"
	"matchly/internal/models"
	"matchly/internal/repositories"
	"matchly/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.MigrateModels())

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db.SQL
}

func createUsers(t *testing.T, tx *gorm.DB, count int) []*models.User {
	t.Helper()

	users := make([]*models.User, 0, count)
	for i := 1; i <= count; i++ {
		user := &models.User{
			Name:     fmt.Sprintf("User %d", i),
			Age:      20 + i%15,
			Email:    fmt.Sprintf("user%d@example.com", i),
			Password: "hashed",
		}
		require.NoError(t, tx.Create(user).Error)
		users = append(users, user)
	}

	return users
}

func swipe(t *testing.T, tx *gorm.DB, swiperID, swipedID int, action models.SwipeAction) {
	t.Helper()
	require.NoError(
		t,
		tx.Create(&models.Swipe{SwiperID: swiperID, SwipedID: swipedID, Action: action}).Error,
	)
}

func userIDs(users []*models.User) []int {
	ids := make([]int, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	return ids
}

func TestUserRepository_ListRecommendations(t *testing.T) {
	ctx := context.Background()
	tx := setupTestDB(t)
	repo := repositories.NewUserRepository(nil)

	users := createUsers(t, tx, 26)
	viewer := users[0]

	t.Run("pages through everyone but the viewer", func(t *testing.T) {
		first, err := repo.ListRecommendations(ctx, tx, viewer.ID, types.NewPage(1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(25), first.Total)
		assert.Len(t, first.Items, 10)
		assert.Equal(t, users[1].ID, first.Items[0].ID)

		third, err := repo.ListRecommendations(ctx, tx, viewer.ID, types.NewPage(3, 10))
		require.NoError(t, err)
		assert.Len(t, third.Items, 5)

		beyond, err := repo.ListRecommendations(ctx, tx, viewer.ID, types.NewPage(4, 10))
		require.NoError(t, err)
		assert.Empty(t, beyond.Items)
		assert.NotNil(t, beyond.Items)
		assert.Equal(t, int64(25), beyond.Total)
	})

	t.Run("page number too large to address is empty", func(t *testing.T) {
		for _, number := range []int{1844674407370955162, math.MaxInt} {
			huge, err := repo.ListRecommendations(ctx, tx, viewer.ID, types.NewPage(number, 10))
			require.NoError(t, err)
			assert.Empty(t, huge.Items, "page %d", number)
			assert.Equal(t, int64(25), huge.Total)

			liked, err := repo.ListLiked(ctx, tx, viewer.ID, types.NewPage(number, 20))
			require.NoError(t, err)
			assert.Empty(t, liked.Items, "page %d", number)
		}
	})

	t.Run("excludes users already swiped either way", func(t *testing.T) {
		swipe(t, tx, viewer.ID, users[1].ID, models.SwipeActionLike)
		swipe(t, tx, viewer.ID, users[2].ID, models.SwipeActionNope)
		// someone else's swipe must not affect the viewer
		swipe(t, tx, users[5].ID, users[3].ID, models.SwipeActionNope)

		result, err := repo.ListRecommendations(ctx, tx, viewer.ID, types.NewPage(1, 100))
		require.NoError(t, err)
		assert.Equal(t, int64(23), result.Total)

		ids := userIDs(result.Items)
		assert.NotContains(t, ids, viewer.ID)
		assert.NotContains(t, ids, users[1].ID)
		assert.NotContains(t, ids, users[2].ID)
		assert.Contains(t, ids, users[3].ID)
		assert.IsIncreasing(t, ids)
	})

	t.Run("preloads pictures", func(t *testing.T) {
		target := users[10]
		require.NoError(t, tx.Create(&models.Picture{
			UserID:      target.ID,
			PicturePath: "https://example.com/b.jpg",
			SortOrder:   2,
		}).Error)
		require.NoError(t, tx.Create(&models.Picture{
			UserID:      target.ID,
			PicturePath: "https://example.com/a.jpg",
			SortOrder:   1,
		}).Error)

		result, err := repo.ListRecommendations(ctx, tx, viewer.ID, types.NewPage(1, 100))
		require.NoError(t, err)

		for _, user := range result.Items {
			if user.ID == target.ID {
				require.Len(t, user.Pictures, 2)
				assert.Equal(t, "https://example.com/a.jpg", user.Pictures[0].PicturePath)
				return
			}
		}
		t.Fatal("target user missing from recommendations")
	})
}

func TestUserRepository_ListLiked(t *testing.T) {
	ctx := context.Background()
	tx := setupTestDB(t)
	repo := repositories.NewUserRepository(nil)

	users := createUsers(t, tx, 5)
	viewer := users[0]

	swipe(t, tx, viewer.ID, users[3].ID, models.SwipeActionLike)
	swipe(t, tx, viewer.ID, users[1].ID, models.SwipeActionLike)
	swipe(t, tx, viewer.ID, users[1].ID, models.SwipeActionLike)
	swipe(t, tx, viewer.ID, users[2].ID, models.SwipeActionNope)
	swipe(t, tx, users[4].ID, users[2].ID, models.SwipeActionLike)

	result, err := repo.ListLiked(ctx, tx, viewer.ID, types.NewPage(1, 20))
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, []int{users[1].ID, users[3].ID}, userIDs(result.Items))

	empty, err := repo.ListLiked(ctx, tx, users[2].ID, types.NewPage(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Total)
	assert.Empty(t, empty.Items)
}

func TestUserRepository_FindPopularCandidates(t *testing.T) {
	ctx := context.Background()
	tx := setupTestDB(t)
	repo := repositories.NewUserRepository(nil)

	users := createUsers(t, tx, 53)
	atThreshold := users[0]
	overThreshold := users[1]
	likers := users[2:]

	for i, liker := range likers {
		swipe(t, tx, liker.ID, overThreshold.ID, models.SwipeActionLike)
		if i < 50 {
			swipe(t, tx, liker.ID, atThreshold.ID, models.SwipeActionLike)
		}
		// nopes never count
		swipe(t, tx, liker.ID, atThreshold.ID, models.SwipeActionNope)
	}

	candidates, err := repo.FindPopularCandidates(ctx, tx, 50)
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, overThreshold.ID, candidates[0].ID)
	assert.Equal(t, overThreshold.Name, candidates[0].Name)
	assert.Equal(t, overThreshold.Email, candidates[0].Email)
	assert.Equal(t, int64(51), candidates[0].LikeCount)

	t.Run("flagged users are skipped", func(t *testing.T) {
		marked, err := repo.MarkPopularNotified(ctx, tx, overThreshold.ID, time.Now())
		require.NoError(t, err)
		assert.True(t, marked)

		candidates, err := repo.FindPopularCandidates(ctx, tx, 50)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})
}

func TestUserRepository_MarkPopularNotified_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	tx := setupTestDB(t)
	repo := repositories.NewUserRepository(nil)

	user := createUsers(t, tx, 1)[0]
	first := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	marked, err := repo.MarkPopularNotified(ctx, tx, user.ID, first)
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = repo.MarkPopularNotified(ctx, tx, user.ID, first.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, marked)

	stored, err := repo.GetByID(ctx, tx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PopularNotifiedAt)
	assert.True(t, first.Equal(*stored.PopularNotifiedAt))
}

func TestUserRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	tx := setupTestDB(t)
	repo := repositories.NewUserRepository(nil)

	user := &models.User{Name: "Ayu", Age: 25, Email: " Ayu@Example.com ", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, tx, user))
	assert.NotZero(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, tx, "ayu@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hashed", byEmail.Password)

	_, err = repo.GetByEmail(ctx, tx, "nobody@example.com")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = repo.GetByID(ctx, tx, user.ID+100)
	assert.ErrorIs(t, err, types.ErrNotFound)

	exists, err := repo.Exists(ctx, tx, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, tx, user.ID+100)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, repo.ClearUserCache(ctx, user.ID))
}
