package cache

import (
	"context"
	"fmt"
	"time"

	"marketplace-listings/pkg/config"
	"marketplace-listings/pkg/logger"

	"github.com/go-redis/redis/v8"
)

var RedisClient *redis.Client

// initialize the Redis client with the provided configuration.
func InitRedis(cfg *config.Config) error {
	opts, err := RedisOptions(cfg)
	if err != nil {
		logger.Get().Errorf("failed to build Redis options: %v", err)
		return err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	_, err = client.Ping(ctx).Result()
	RecordOperationDuration("ping", start)
	if err != nil {
		IncrementError("ping")
		_ = client.Close()
		logger.Get().Errorf("failed to connect to Redis: %v", err)
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	RedisClient = client
	logger.Get().Println("Redis connected successfully")
	return nil
}

// close the Redis client connection.
func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Get().Errorf("error closing Redis: %v", err)
		} else {
			logger.Get().Println("Redis connection closed")
		}
	}
}
