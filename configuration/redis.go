package configuration

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to the redis server used for the doctor-list
// cache, retrying a few times before giving up.
func InitRedis() (*redis.Client, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	const maxRetries = 5
	const retryDelay = 5 * time.Second

	var err error
	for i := 0; i < maxRetries; i++ {
		client := redis.NewClient(&redis.Options{
			Network:  "tcp",
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})

		if _, err = client.Ping(context.Background()).Result(); err == nil {
			return client, nil
		}
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("connect to redis after %d attempts: %w", maxRetries, err)
}
