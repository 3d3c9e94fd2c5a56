package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CourseCache is a small JSON read-through cache for the public catalog.
// Entries are short-lived; the student counter inside a cached course may lag
// the database by up to the TTL.
type CourseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCourseCache(client *redis.Client, ttl time.Duration) *CourseCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &CourseCache{client: client, ttl: ttl}
}

func courseKey(id string) string {
	return "catalog:course:" + id
}

func listKey(page, limit int) string {
	return fmt.Sprintf("catalog:courses:%d:%d", page, limit)
}

// Get unmarshals the cached value into dest. Returns false on miss or when
// the cache is not configured.
func (c *CourseCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *CourseCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, c.ttl)
}

func (c *CourseCache) GetCourse(ctx context.Context, id string, dest interface{}) bool {
	return c.Get(ctx, courseKey(id), dest)
}

func (c *CourseCache) SetCourse(ctx context.Context, id string, value interface{}) {
	c.Set(ctx, courseKey(id), value)
}

func (c *CourseCache) GetList(ctx context.Context, page, limit int, dest interface{}) bool {
	return c.Get(ctx, listKey(page, limit), dest)
}

func (c *CourseCache) SetList(ctx context.Context, page, limit int, value interface{}) {
	c.Set(ctx, listKey(page, limit), value)
}

// Invalidate drops one course entry plus every cached list page.
func (c *CourseCache) Invalidate(ctx context.Context, id string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, courseKey(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	iter := c.client.Scan(ctx, 0, "catalog:courses:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
