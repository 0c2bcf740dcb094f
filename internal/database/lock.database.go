package database

import (
	"context"
	"time"

	"matchly/internal/constants"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// releaseLockScript deletes the key only while it still holds our token, so a
// lock that expired and was taken by another process is left alone.
var releaseLockScript = valkey.NewLuaScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireLock takes a cross-process lock on key for at most ttl. Without a
// cache there is nothing to coordinate with, so the lock is always granted.
// The returned release func is never nil.
func (s *DB) AcquireLock(
	ctx context.Context,
	key string,
	ttl time.Duration,
) (release func(), acquired bool, err error) {
	log := logger.New("database").Function("AcquireLock")

	if s.Cache.General == nil {
		return func() {}, true, nil
	}

	token := uuid.New().String()
	builder := NewCacheBuilder(s.Cache.General, key).
		WithHash(constants.LockCachePrefix).
		WithValue(token).
		WithTTL(ttl).
		WithContext(ctx)

	acquired, err = builder.SetNX()
	if err != nil {
		return func() {}, false, log.Err("failed to acquire lock", err, "key", builder.Key())
	}

	if !acquired {
		log.Info("Lock already held", "key", builder.Key())
		return func() {}, false, nil
	}

	lockKey := builder.Key()
	client := s.Cache.General
	release = func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result := releaseLockScript.Exec(releaseCtx, client, []string{lockKey}, []string{token})
		if err := result.Error(); err != nil && !valkey.IsValkeyNil(err) {
			log.Warn("Failed to release lock", "key", lockKey, "error", err)
		}
	}

	return release, true, nil
}
