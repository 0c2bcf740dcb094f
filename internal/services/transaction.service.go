package services

import (
	"context"
	"fmt"

	"matchly/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type TxFunc func(ctx context.Context, tx *gorm.DB) error

// TransactionService runs a function inside one database transaction.
type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute commits when fn returns nil and rolls back otherwise. A panic in fn
// is rolled back and returned as an error; if that rollback also fails the
// panic is re-raised.
func (ts *TransactionService) Execute(ctx context.Context, fn TxFunc) (err error) {
	log := ts.log.TraceFromContext(ctx).Function("Execute")

	tx := ts.db.SQLWithContext(ctx).Begin()
	if tx.Error != nil {
		return log.Err("failed to begin transaction", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			err = ts.recoverPanic(log, tx, r)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return ts.rollback(log, tx, err)
	}

	if err := tx.Commit().Error; err != nil {
		return log.Err("failed to commit transaction", err)
	}

	return nil
}

func (ts *TransactionService) rollback(log logger.Logger, tx *gorm.DB, cause error) error {
	if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
		log.Er("CRITICAL: failed to rollback after function error", rollbackErr, "originalError", cause)
		return log.Error("transaction rollback failed", "rollbackError", rollbackErr, "originalError", cause)
	}
	return cause
}

func (ts *TransactionService) recoverPanic(log logger.Logger, tx *gorm.DB, r any) error {
	panicErr := log.ErrMsg(fmt.Sprintf("panic during transaction: %v", r))

	if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
		log.Er("CRITICAL: failed to rollback after panic", rollbackErr, "panic", r)
		panic(fmt.Sprintf("transaction rollback failed: %v (panic: %v)", rollbackErr, r))
	}

	log.Info("transaction rolled back after panic")
	return panicErr
}
