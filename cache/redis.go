package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"polls-backend/config"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis connection and verifies it with a ping.
// Redis is optional infrastructure here: callers are expected to treat
// a connection failure as "run without cache", not as fatal.
func Connect(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %v", err)
	}

	log.Printf("Redis connection established at %s", cfg.RedisAddr)
	return client, nil
}
