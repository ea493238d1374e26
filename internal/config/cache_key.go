package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a user's active session JTI
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("session:%d", userID)
}

// LifecycleChannel returns the Redis PubSub channel for group lifecycle events
func (r *CacheKeyStruct) LifecycleChannel() string {
	return "groups:lifecycle"
}

var CacheKey = NewCacheKeyStruct()
