package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// AssessmentCache keeps hot assessment reads off the database. Misses
// and cache-layer errors are equivalent: the caller falls through to the
// store. Writes invalidate so a retake is never served stale.
type AssessmentCache interface {
	Get(ctx context.Context, childID, subject string) (AssessmentRecord, bool)
	Set(ctx context.Context, childID, subject string, rec AssessmentRecord)
	Invalidate(ctx context.Context, childID, subject string)
}

// CachedStore layers an AssessmentCache in front of a Store. Only
// assessment reads are cached; completion and level-test records are
// gate inputs and always read through.
type CachedStore struct {
	Store
	cache AssessmentCache
}

func NewCachedStore(store Store, cache AssessmentCache) *CachedStore {
	return &CachedStore{Store: store, cache: cache}
}

func (c *CachedStore) GetAssessment(ctx context.Context, childID, subject string) (AssessmentRecord, bool, error) {
	if rec, ok := c.cache.Get(ctx, childID, subject); ok {
		return rec, true, nil
	}
	rec, ok, err := c.Store.GetAssessment(ctx, childID, subject)
	if err == nil && ok {
		c.cache.Set(ctx, childID, subject, rec)
	}
	return rec, ok, err
}

func (c *CachedStore) PutAssessment(ctx context.Context, childID, subject string, rec AssessmentRecord) error {
	c.cache.Invalidate(ctx, childID, subject)
	return c.Store.PutAssessment(ctx, childID, subject, rec)
}

// localCache is the in-process AssessmentCache used when no redis URL is
// configured.
type localCache struct {
	mu  sync.RWMutex
	m   map[string]localEntry
	ttl time.Duration
}

type localEntry struct {
	rec     AssessmentRecord
	expires time.Time
}

func NewLocalCache(ttl time.Duration) AssessmentCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &localCache{m: map[string]localEntry{}, ttl: ttl}
}

func (l *localCache) Get(_ context.Context, childID, subject string) (AssessmentRecord, bool) {
	l.mu.RLock()
	e, ok := l.m[join(childID, subject)]
	l.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return AssessmentRecord{}, false
	}
	return e.rec, true
}

func (l *localCache) Set(_ context.Context, childID, subject string, rec AssessmentRecord) {
	l.mu.Lock()
	l.m[join(childID, subject)] = localEntry{rec: rec, expires: time.Now().Add(l.ttl)}
	l.mu.Unlock()
}

func (l *localCache) Invalidate(_ context.Context, childID, subject string) {
	l.mu.Lock()
	delete(l.m, join(childID, subject))
	l.mu.Unlock()
}

// RedisCache is the shared AssessmentCache for multi-instance
// deployments.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects and pings; a bad URL or unreachable server is
// an error so misconfiguration fails at startup, not at first request.
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	if url == "" {
		return nil, fmt.Errorf("cache: redis URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: pinging redis: %w", err)
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (r *RedisCache) Close() error { return r.client.Close() }

func cacheKey(childID, subject string) string {
	return fmt.Sprintf("assessment:%s:%s", childID, subject)
}

func (r *RedisCache) Get(ctx context.Context, childID, subject string) (AssessmentRecord, bool) {
	raw, err := r.client.Get(ctx, cacheKey(childID, subject)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: get %s/%s: %v", childID, subject, err)
		}
		return AssessmentRecord{}, false
	}
	var rec AssessmentRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return AssessmentRecord{}, false
	}
	return rec, true
}

func (r *RedisCache) Set(ctx context.Context, childID, subject string, rec AssessmentRecord) {
	buf, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, cacheKey(childID, subject), buf, r.ttl).Err(); err != nil {
		log.Printf("cache: set %s/%s: %v", childID, subject, err)
	}
}

func (r *RedisCache) Invalidate(ctx context.Context, childID, subject string) {
	if err := r.client.Del(ctx, cacheKey(childID, subject)).Err(); err != nil {
		log.Printf("cache: invalidate %s/%s: %v", childID, subject, err)
	}
}

var _ AssessmentCache = (*RedisCache)(nil)
