// Package cache holds the offline library snapshot: the most recent merged
// view per member, readable with no document-store round trip.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"booknest-be/internal/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type LibrarySnapshotCache interface {
	Save(ctx context.Context, memberId uuid.UUID, entries []*entity.LibraryEntry) error
	// Load returns an empty list on a cold cache, never an error the
	// caller must branch on.
	Load(ctx context.Context, memberId uuid.UUID) []*entity.LibraryEntry
	Drop(ctx context.Context, memberId uuid.UUID) error
}

type redisSnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSnapshotCache(rdb *redis.Client, ttl time.Duration) LibrarySnapshotCache {
	return &redisSnapshotCache{rdb: rdb, ttl: ttl}
}

func key(memberId uuid.UUID) string {
	return "booknest:library:" + memberId.String()
}

func (c *redisSnapshotCache) Save(ctx context.Context, memberId uuid.UUID, entries []*entity.LibraryEntry) error {
	if c.rdb == nil {
		return nil
	}
	if entries == nil {
		entries = []*entity.LibraryEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(memberId), data, c.ttl).Err()
}

func (c *redisSnapshotCache) Load(ctx context.Context, memberId uuid.UUID) []*entity.LibraryEntry {
	if c.rdb == nil {
		return []*entity.LibraryEntry{}
	}
	data, err := c.rdb.Get(ctx, key(memberId)).Bytes()
	if err != nil {
		// Cache miss and redis-down look the same to the caller: cold.
		return []*entity.LibraryEntry{}
	}
	var entries []*entity.LibraryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []*entity.LibraryEntry{}
	}
	return entries
}

func (c *redisSnapshotCache) Drop(ctx context.Context, memberId uuid.UUID) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, key(memberId)).Err()
}
