package cache

import (
	"context"
	"encoding/json"
	"pokerclock/internal/game"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotCache keeps the latest clock snapshot of every table so readers
// never touch the live game.
type SnapshotCache interface {
	Set(ctx context.Context, code string, snap game.Snapshot) error
	Get(ctx context.Context, code string) (*game.Snapshot, error)
	Delete(ctx context.Context, code string) error
}

type snapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) SnapshotCache {
	return &snapshotCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *snapshotCache) key(code string) string {
	return "snapshot:" + code
}

func (c *snapshotCache) Set(ctx context.Context, code string, snap game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(code), data, c.ttl).Err()
}

// Get returns nil when no snapshot is stored for code
func (c *snapshotCache) Get(ctx context.Context, code string) (*game.Snapshot, error) {
	data, err := c.client.Get(ctx, c.key(code)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *snapshotCache) Delete(ctx context.Context, code string) error {
	return c.client.Del(ctx, c.key(code)).Err()
}
