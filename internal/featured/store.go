package featured

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

var ErrEmptyID = errors.New("restaurant id is required")

// Store holds the ids of restaurants promoted on the home page.
type Store interface {
	List(ctx context.Context) ([]string, error)
	Set(ctx context.Context, id string, featured bool) error
}

// --------------------------------------------------
// In-process store (single instance deployments, tests)
// --------------------------------------------------

type MemoryStore struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewMemoryStore(ids ...string) *MemoryStore {
	s := &MemoryStore{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

func (s *MemoryStore) List(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, id string, featured bool) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if featured {
		s.ids[id] = struct{}{}
	} else {
		delete(s.ids, id)
	}
	return nil
}

// --------------------------------------------------
// Redis-backed store (shared across instances)
// --------------------------------------------------

const DefaultRedisKey = "datenight:featured"

type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects using a redis:// URL and pings the server.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client, key: DefaultRedisKey}, nil
}

func NewRedisStoreFromClient(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis SMEMBERS: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, featured bool) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}

	var err error
	if featured {
		err = s.client.SAdd(ctx, s.key, id).Err()
	} else {
		err = s.client.SRem(ctx, s.key, id).Err()
	}
	if err != nil {
		return fmt.Errorf("redis update featured: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
