package database

import (
	"TravelMate/config/environment"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var RedisClient *redis.Client

// InitRedis connects to Redis when REDIS_URL is set. It returns a nil client
// and no error when the cache is disabled.
func InitRedis(ctx context.Context, logger *zap.Logger) (*redis.Client, error) {
	redisURL := environment.GetRedisURL()
	if redisURL == "" {
		logger.Info("REDIS_URL not set, place cache disabled")
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	RedisClient = client
	logger.Info("Redis initialized", zap.String("addr", opts.Addr))
	return client, nil
}
