package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

// TitleCacheTTL bounds staleness of cached AI titles; the Postgres row is
// always the authority.
const TitleCacheTTL = 30 * time.Minute

// CacheService provides a Redis cache-aside layer over the ai_titles
// table so batched lookups during aggregation stay off the database.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetTitles fetches cached entries for the given video IDs with one MGET.
// IDs that are not cached are absent from the result.
func (c *CacheService) GetTitles(ctx context.Context, videoIDs []string) (map[string]model.TitleEntry, error) {
	out := make(map[string]model.TitleEntry, len(videoIDs))
	if c.rdb == nil || len(videoIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(videoIDs))
	for i, id := range videoIDs {
		keys[i] = titleKey(id)
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return out, err
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var entry model.TitleEntry
		if err := json.Unmarshal([]byte(s), &entry); err != nil {
			continue
		}
		out[videoIDs[i]] = entry
	}
	return out, nil
}

// SetTitle stores one entry in cache.
func (c *CacheService) SetTitle(ctx context.Context, e model.TitleEntry) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, titleKey(e.VideoID), b, TitleCacheTTL).Err()
}

// InvalidateTitle removes a video's cached entry (called after an upsert).
func (c *CacheService) InvalidateTitle(ctx context.Context, videoID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, titleKey(videoID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func titleKey(videoID string) string {
	return fmt.Sprintf("aititle:%s", videoID)
}
