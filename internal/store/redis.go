package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores the document as fields of a single hash
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis connects to addr and checks the connection
func NewRedis(addr, key string) (*Redis, error) {
	if addr == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	if key == "" {
		return nil, errors.New("redis key cannot be empty")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Redis{client: client, key: key}, nil
}

func (r *Redis) Load(ctx context.Context) (map[string]string, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load values: %w", err)
	}
	return values, nil
}

func (r *Redis) Save(ctx context.Context, key, value string) error {
	return r.client.HSet(ctx, r.key, key, value).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	// Deleting a missing field is not an error
	return r.client.HDel(ctx, r.key, key).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
