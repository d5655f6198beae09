package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Backend is the per client key-value storage that session records persist to.
type Backend interface {
	Get(ctx context.Context, clientID, key string) (string, bool, error)
	Set(ctx context.Context, clientID, key, value string) error
	Delete(ctx context.Context, clientID, key string) error
}

// MemoryBackend keeps client namespaces in process memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryBackend constructs an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]map[string]string)}
}

// Get implements Backend.
func (b *MemoryBackend) Get(_ context.Context, clientID, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	value, ok := b.data[clientID][key]
	return value, ok, nil
}

// Set implements Backend.
func (b *MemoryBackend) Set(_ context.Context, clientID, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ns, ok := b.data[clientID]
	if !ok {
		ns = make(map[string]string)
		b.data[clientID] = ns
	}
	ns[key] = value
	return nil
}

// Delete implements Backend. Removing a missing key is not an error.
func (b *MemoryBackend) Delete(_ context.Context, clientID, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ns, ok := b.data[clientID]; ok {
		delete(ns, key)
		if len(ns) == 0 {
			delete(b.data, clientID)
		}
	}
	return nil
}

// RedisBackend stores each client key as a Redis string with a sliding TTL.
type RedisBackend struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisBackend constructs a RedisBackend. Keys are laid out as prefix:clientID:key.
func NewRedisBackend(client redis.Cmdable, prefix string, ttl time.Duration) *RedisBackend {
	if prefix == "" {
		prefix = "portal:client"
	}
	return &RedisBackend{client: client, prefix: prefix, ttl: ttl}
}

func (b *RedisBackend) key(clientID, key string) string {
	return fmt.Sprintf("%s:%s:%s", b.prefix, clientID, key)
}

// Get implements Backend.
func (b *RedisBackend) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	value, err := b.client.Get(ctx, b.key(clientID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

// Set implements Backend.
func (b *RedisBackend) Set(ctx context.Context, clientID, key, value string) error {
	if err := b.client.Set(ctx, b.key(clientID, key), value, b.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete implements Backend.
func (b *RedisBackend) Delete(ctx context.Context, clientID, key string) error {
	if err := b.client.Del(ctx, b.key(clientID, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
