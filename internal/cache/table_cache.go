package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"pokerclock/internal/model"
	"time"

	"github.com/redis/go-redis/v9"
)

// tablesKey is a sorted set of table codes scored by creation time
const tablesKey = "tables"

// TableCache handles Redis operations for table metadata
type TableCache interface {
	SetMeta(ctx context.Context, t *model.Table) error
	GetMeta(ctx context.Context, code string) (*model.Table, error)
	SetStatus(ctx context.Context, code string, status model.TableStatus) error
	List(ctx context.Context) ([]*model.Table, error)
	Delete(ctx context.Context, code string) error
	Exists(ctx context.Context, code string) (bool, error)
}

type tableCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTableCache creates a new table cache
func NewTableCache(client *redis.Client) TableCache {
	return &tableCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *tableCache) key(code string) string {
	return fmt.Sprintf("table:%s", code)
}

func (c *tableCache) SetMeta(ctx context.Context, t *model.Table) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, c.key(t.Code), data, c.ttl)
	pipe.ZAdd(ctx, tablesKey, redis.Z{
		Score:  float64(t.CreatedAt.UnixMilli()),
		Member: t.Code,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (c *tableCache) GetMeta(ctx context.Context, code string) (*model.Table, error) {
	data, err := c.client.Get(ctx, c.key(code)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var t model.Table
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *tableCache) SetStatus(ctx context.Context, code string, status model.TableStatus) error {
	t, err := c.GetMeta(ctx, code)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("table %s not found", code)
	}
	t.Status = status
	return c.SetMeta(ctx, t)
}

// List returns every known table, newest first. Codes whose metadata expired
// are dropped from the index on the way.
func (c *tableCache) List(ctx context.Context) ([]*model.Table, error) {
	codes, err := c.client.ZRevRange(ctx, tablesKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	tables := []*model.Table{}
	for _, code := range codes {
		t, err := c.GetMeta(ctx, code)
		if err != nil {
			return nil, err
		}
		if t == nil {
			c.client.ZRem(ctx, tablesKey, code)
			continue
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (c *tableCache) Delete(ctx context.Context, code string) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.key(code))
	pipe.ZRem(ctx, tablesKey, code)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *tableCache) Exists(ctx context.Context, code string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(code)).Result()
	return n > 0, err
}
