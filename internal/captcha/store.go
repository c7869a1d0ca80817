package captcha

import (
	"context"
	"sync"
	"time"

	"tixground/pkg/cache"
)

// Store keeps issued challenge codes until they are consumed or expire.
// Codes are single-use: Consume removes the code it returns.
type Store interface {
	Save(ctx context.Context, id, code string, ttl time.Duration) error
	Consume(ctx context.Context, id string) (string, bool, error)
}

// memoryStore is the default single-process store

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

type memoryStore struct {
	mu    sync.Mutex
	codes map[string]memoryEntry
}

func NewMemoryStore() Store {
	return &memoryStore{codes: make(map[string]memoryEntry)}
}

func (s *memoryStore) Save(ctx context.Context, id, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[id] = memoryEntry{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memoryStore) Consume(ctx context.Context, id string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[id]
	if !ok {
		return "", false, nil
	}
	delete(s.codes, id)

	if time.Now().After(entry.expiresAt) {
		return "", false, nil
	}
	return entry.code, true, nil
}

// redisStore backs the challenge codes with Redis so several harness
// instances can share challenge state behind one address

type redisStore struct {
	cache  cache.Service
	prefix string
}

func NewRedisStore(cacheService cache.Service) Store {
	return &redisStore{
		cache:  cacheService,
		prefix: "tixground:captcha:",
	}
}

func (s *redisStore) Save(ctx context.Context, id, code string, ttl time.Duration) error {
	return s.cache.Set(ctx, s.prefix+id, code, ttl)
}

func (s *redisStore) Consume(ctx context.Context, id string) (string, bool, error) {
	var code string
	err := s.cache.GetDel(ctx, s.prefix+id, &code)
	if err == cache.ErrCacheMiss {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return code, true, nil
}
