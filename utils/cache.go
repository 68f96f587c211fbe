package utils

import (
	"context"
	"log"
	"time"

	"slotly/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated Redis client for auth state: revoked
// token hashes live here until the underlying token would have expired.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for auth caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for auth caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

const revokedTokenPrefix = "revoked:"

// RevokeToken marks a token hash as revoked until ttl elapses.
func RevokeToken(ctx context.Context, tokenHash string, ttl time.Duration) error {
	return GetAuthCacheClient().Set(ctx, revokedTokenPrefix+tokenHash, "1", ttl).Err()
}

// IsTokenRevoked reports whether a token hash has been revoked.
func IsTokenRevoked(ctx context.Context, tokenHash string) (bool, error) {
	n, err := GetAuthCacheClient().Exists(ctx, revokedTokenPrefix+tokenHash).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
