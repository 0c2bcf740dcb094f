package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"matchly/internal/database"
	"matchly/internal/models"
	"matchly/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (database.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return database.DB{SQL: gormDB}, mock
}

func TestTransactionService_Execute(t *testing.T) {
	fnErr := errors.New("mark failed")

	tests := []struct {
		name      string
		expect    func(mock sqlmock.Sqlmock)
		fn        TxFunc
		wantErr   bool
		wantIsErr error
	}{
		{
			name: "commits on success",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, tx *gorm.DB) error { return nil },
		},
		{
			name: "rolls back and returns the function error",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:        func(ctx context.Context, tx *gorm.DB) error { return fnErr },
			wantErr:   true,
			wantIsErr: fnErr,
		},
		{
			name: "reports a failed rollback",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback().WillReturnError(errors.New("connection reset"))
			},
			fn:      func(ctx context.Context, tx *gorm.DB) error { return fnErr },
			wantErr: true,
		},
		{
			name: "reports a failed commit",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errors.New("connection reset"))
			},
			fn:      func(ctx context.Context, tx *gorm.DB) error { return nil },
			wantErr: true,
		},
		{
			name: "fails when begin fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
			},
			fn: func(ctx context.Context, tx *gorm.DB) error {
				t.Fatal("function must not run without a transaction")
				return nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.expect(mock)

			err := NewTransactionService(db).Execute(context.Background(), tt.fn)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantIsErr != nil {
				assert.ErrorIs(t, err, tt.wantIsErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTransactionService_Execute_PanicRecovery(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := NewTransactionService(db).Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		panic("notifier exploded")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic during transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Execute_RollbackDiscardsMark(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repos := repositories.New(db)

	user := &models.User{Name: "Ayu", Age: 25, Email: "ayu@example.com", Password: "hash"}
	require.NoError(t, db.SQL.Create(user).Error)

	fnErr := errors.New("audit write failed")
	err := NewTransactionService(db).Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		marked, err := repos.User.MarkPopularNotified(ctx, tx, user.ID, time.Now().UTC())
		require.NoError(t, err)
		require.True(t, marked)
		return fnErr
	})
	assert.ErrorIs(t, err, fnErr)

	var reloaded models.User
	require.NoError(t, db.SQL.First(&reloaded, user.ID).Error)
	assert.Nil(t, reloaded.PopularNotifiedAt)
}
