package recommendationController

import (
	"context"
	"fmt"
	"testing"

	"matchly/internal/database"
	"matchly/internal/models"
	"matchly/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) database.DB {
	t.Helper()

	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.MigrateModels())

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestRecommendationController_ListRecommendations(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	controller := New(repositories.New(db), db)

	users := make([]*models.User, 0, 26)
	for i := 1; i <= 26; i++ {
		user := &models.User{
			Name:     fmt.Sprintf("User %d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			Password: "hashed",
		}
		require.NoError(t, db.SQL.Create(user).Error)
		users = append(users, user)
	}
	viewer := users[0]

	tests := []struct {
		page      int
		wantPage  int
		wantItems int
	}{
		{page: 1, wantPage: 1, wantItems: 10},
		{page: 2, wantPage: 2, wantItems: 10},
		{page: 3, wantPage: 3, wantItems: 5},
		{page: 4, wantPage: 4, wantItems: 0},
		{page: 0, wantPage: 1, wantItems: 10},
		{page: -3, wantPage: 1, wantItems: 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			result, err := controller.ListRecommendations(ctx, viewer, tt.page)

			require.NoError(t, err)
			assert.Equal(t, int64(25), result.Total)
			assert.Equal(t, tt.wantPage, result.Page.Number)
			assert.Equal(t, 10, result.Page.Size)
			assert.Len(t, result.Items, tt.wantItems)
		})
	}

	t.Run("pages do not overlap", func(t *testing.T) {
		seen := map[int]bool{}
		for page := 1; page <= 3; page++ {
			result, err := controller.ListRecommendations(ctx, viewer, page)
			require.NoError(t, err)
			for _, user := range result.Items {
				assert.False(t, seen[user.ID], "user %d returned twice", user.ID)
				seen[user.ID] = true
			}
		}
		assert.Len(t, seen, 25)
		assert.False(t, seen[viewer.ID])
	})
}
