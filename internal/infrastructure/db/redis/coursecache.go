package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

const (
	courseCacheTTL    = 5 * time.Minute
	courseCachePrefix = "courses:list:"
)

// CourseCache caches course listings as JSON blobs keyed by filter.
// Invalidation drops all listing keys at once; five minutes of staleness is
// acceptable for a catalog but a mutation must be visible on the next read.
type CourseCache struct {
	client *redis.Client
}

// NewCourseCache wraps the given Redis client.
func NewCourseCache(client *redis.Client) *CourseCache {
	return &CourseCache{client: client}
}

func (c *CourseCache) Get(ctx context.Context, filter ports.CourseFilter) ([]*domain.Course, bool, error) {
	raw, err := c.client.Get(ctx, c.key(filter)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("course cache get: %w", err)
	}

	var courses []*domain.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, false, fmt.Errorf("course cache decode: %w", err)
	}
	return courses, true, nil
}

func (c *CourseCache) Set(ctx context.Context, filter ports.CourseFilter, courses []*domain.Course) error {
	raw, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("course cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(filter), raw, courseCacheTTL).Err(); err != nil {
		return fmt.Errorf("course cache set: %w", err)
	}
	return nil
}

// Invalidate removes every cached listing.
func (c *CourseCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, courseCachePrefix+"*", 0).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("course cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("course cache invalidate: %w", err)
	}
	return nil
}

func (c *CourseCache) key(filter ports.CourseFilter) string {
	return fmt.Sprintf("%s%d:%t:%s", courseCachePrefix, filter.CategoryID, filter.Featured, filter.Search)
}
