package repositories_test

import (
	"context"
	"testing"
	"time"

	"matchly/internal/models"
	"matchly/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestSwipeRepository_Create(t *testing.T) {
	ctx := context.Background()
	tx := setupTestDB(t)
	repo := repositories.NewSwipeRepository()

	users := createUsers(t, tx, 2)

	record := &models.Swipe{SwiperID: users[0].ID, SwipedID: users[1].ID, Action: models.SwipeActionLike}
	require.NoError(t, repo.Create(ctx, tx, record))
	assert.NotZero(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())

	// duplicates and self-swipes are stored as-is
	require.NoError(t, repo.Create(ctx, tx, &models.Swipe{
		SwiperID: users[0].ID, SwipedID: users[1].ID, Action: models.SwipeActionLike,
	}))
	require.NoError(t, repo.Create(ctx, tx, &models.Swipe{
		SwiperID: users[0].ID, SwipedID: users[0].ID, Action: models.SwipeActionNope,
	}))

	swipes, err := gorm.G[models.Swipe](tx).
		Where("swiper_id = ?", users[0].ID).
		Order("id ASC").
		Find(ctx)
	require.NoError(t, err)
	assert.Len(t, swipes, 3)
	assert.Equal(t, record.ID, swipes[0].ID)
}

func TestPopularityNotificationRepository(t *testing.T) {
	ctx := context.Background()
	tx := setupTestDB(t)
	repo := repositories.NewPopularityNotificationRepository()

	user := createUsers(t, tx, 1)[0]
	failure := "smtp: connection refused"
	attempted := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, tx, &models.PopularityNotification{
		UserID:      user.ID,
		LikeCount:   51,
		Recipient:   "admin@example.com",
		Status:      models.NotificationStatusFailed,
		Error:       &failure,
		AttemptedAt: attempted,
	}))
	require.NoError(t, repo.Create(ctx, tx, &models.PopularityNotification{
		UserID:      user.ID,
		LikeCount:   52,
		Recipient:   "admin@example.com",
		Status:      models.NotificationStatusSent,
		Payload:     datatypes.JSON(`{"subject":"Popular User Alert: User 1"}`),
		AttemptedAt: attempted.Add(time.Hour),
	}))

	notifications, err := repo.ListByUser(ctx, tx, user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, models.NotificationStatusFailed, notifications[0].Status)
	require.NotNil(t, notifications[0].Error)
	assert.Equal(t, failure, *notifications[0].Error)
	assert.Equal(t, models.NotificationStatusSent, notifications[1].Status)
	assert.JSONEq(t, `{"subject":"Popular User Alert: User 1"}`, string(notifications[1].Payload))
}
