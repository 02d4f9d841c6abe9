package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"llm-lms/backend/internal/model"
)

type redisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) DocumentStore {
	return &redisRepository{rdb: rdb}
}

// ConnectRedis dials addr and checks the connection with PING.
func ConnectRedis(ctx context.Context, addr string) (DocumentStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisRepository(rdb), nil
}

// Key Generation Helpers
func (r *redisRepository) collectionKey(userID model.UserIdentity, collection string) string {
	return fmt.Sprintf("users:%s:%s", userID, collection)
}

// Append pushes the JSON-encoded record onto the tail of the user's list.
func (r *redisRepository) Append(ctx context.Context, userID model.UserIdentity, collection string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return persistenceError("could not encode record", err)
	}
	if err := r.rdb.RPush(ctx, r.collectionKey(userID, collection), data).Err(); err != nil {
		return persistenceError("could not push record", err)
	}
	return nil
}

func (r *redisRepository) Close() error {
	return r.rdb.Close()
}
