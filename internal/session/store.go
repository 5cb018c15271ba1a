package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix is the Redis key prefix for session hashes.
	keyPrefix = "session:"

	fieldUsername    = "username"
	fieldPreviousURL = "previous_url"
)

// Store is the server-side session state. An interface so handlers and
// middleware can be tested against an in-memory fake.
type Store interface {
	// Create allocates a fresh anonymous session.
	Create(ctx context.Context) (*Session, error)

	// Get loads a session by ID. Returns ErrNotFound when the ID has
	// expired or never existed.
	Get(ctx context.Context, id string) (*Session, error)

	// BindUser associates a username with the session (login). Rebinding
	// on profile rename uses the same call.
	BindUser(ctx context.Context, id, username string) error

	// UnbindUser clears the username (logout). Idempotent.
	UnbindUser(ctx context.Context, id string) error

	// SetPreviousURL remembers where a mutating action should return to.
	SetPreviousURL(ctx context.Context, id, url string) error

	// PopPreviousURL consumes the remembered URL; returns "" when none
	// is pending. The value is single-use: a second pop falls through
	// to the caller's default destination.
	PopPreviousURL(ctx context.Context, id string) (string, error)

	// AddFlash queues a one-shot message for the next rendered page.
	AddFlash(ctx context.Context, id, message string) error

	// PopFlashes drains all queued messages.
	PopFlashes(ctx context.Context, id string) ([]string, error)
}

// RedisStore implements Store on a Redis hash per session plus a list
// for flash messages. Every touch refreshes the TTL so active sessions
// never expire mid-use.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Store bound to the given client. maxAge is
// the idle session lifetime.
func NewRedisStore(client *redis.Client, maxAge time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: maxAge}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

func flashKey(id string) string {
	return keyPrefix + id + ":flash"
}

// Create allocates a new session ID and writes an empty hash so the key
// exists and carries a TTL from the start.
func (s *RedisStore) Create(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	key := sessionKey(id)

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key, fieldUsername, "")
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Session{ID: id}, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	key := sessionKey(id)

	vals, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if len(vals) == 0 {
		return nil, ErrNotFound
	}

	// Sliding expiry: reading a session keeps it alive.
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}

	return &Session{ID: id, Username: vals[fieldUsername]}, nil
}

func (s *RedisStore) BindUser(ctx context.Context, id, username string) error {
	key := sessionKey(id)

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key, fieldUsername, username)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("bind user: %w", err)
	}
	return nil
}

func (s *RedisStore) UnbindUser(ctx context.Context, id string) error {
	if err := s.client.HSet(ctx, sessionKey(id), fieldUsername, "").Err(); err != nil {
		return fmt.Errorf("unbind user: %w", err)
	}
	return nil
}

func (s *RedisStore) SetPreviousURL(ctx context.Context, id, url string) error {
	key := sessionKey(id)

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key, fieldPreviousURL, url)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set previous url: %w", err)
	}
	return nil
}

func (s *RedisStore) PopPreviousURL(ctx context.Context, id string) (string, error) {
	key := sessionKey(id)

	pipe := s.client.Pipeline()
	get := pipe.HGet(ctx, key, fieldPreviousURL)
	pipe.HDel(ctx, key, fieldPreviousURL)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return "", fmt.Errorf("pop previous url: %w", err)
	}

	url, err := get.Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("pop previous url: %w", err)
	}
	return url, nil
}

func (s *RedisStore) AddFlash(ctx context.Context, id, message string) error {
	key := flashKey(id)

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add flash: %w", err)
	}
	return nil
}

func (s *RedisStore) PopFlashes(ctx context.Context, id string) ([]string, error) {
	key := flashKey(id)

	pipe := s.client.Pipeline()
	get := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("pop flashes: %w", err)
	}

	messages, err := get.Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("pop flashes: %w", err)
	}
	return messages, nil
}
