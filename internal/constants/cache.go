package constants

import "time"

const (
	UserCachePrefix  = "user" // Single cache by user ID (CacheBuilder adds colon)
	UserCacheExpiry  = 24 * time.Hour
	UserCacheTimeout = 500 * time.Millisecond
	LockCachePrefix  = "lock" // Run locks (CacheBuilder adds colon)
)
