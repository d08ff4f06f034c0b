package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore shares views across instances. The view key holds the creation
// time in unix milliseconds; a separate submitted key is claimed with SETNX.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	opts   options
}

func NewRedisStore(client *redis.Client, keyPrefix string, ttl time.Duration, opts ...Option) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: keyPrefix + "view:",
		ttl:    ttl,
		opts:   buildOptions(opts),
	}
}

func (s *RedisStore) viewKey(id string) string      { return s.prefix + id }
func (s *RedisStore) submittedKey(id string) string { return s.prefix + id + ":submitted" }

func (s *RedisStore) Open(ctx context.Context) (*View, error) {
	now := s.opts.now()
	id := s.opts.newID()

	created := strconv.FormatInt(now.UnixMilli(), 10)
	ok, err := s.client.SetNX(ctx, s.viewKey(id), created, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("views: open: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("views: id collision for %s", id)
	}

	return &View{
		ID:        id,
		State:     StateUnsubmitted,
		CreatedAt: time.UnixMilli(now.UnixMilli()),
		ExpiresAt: time.UnixMilli(now.Add(s.ttl).UnixMilli()),
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*View, error) {
	vals, err := s.client.MGet(ctx, s.viewKey(id), s.submittedKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("views: get: %w", err)
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, ErrNotFound
	}
	createdMS, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("views: corrupt view %s: %w", id, err)
	}

	view := &View{
		ID:        id,
		State:     StateUnsubmitted,
		CreatedAt: time.UnixMilli(createdMS),
		ExpiresAt: time.UnixMilli(createdMS).Add(s.ttl),
	}
	if vals[1] != nil {
		view.State = StateSubmitted
	}
	return view, nil
}

func (s *RedisStore) MarkSubmitted(ctx context.Context, id string) (bool, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return false, err
	}

	first, err := s.client.SetNX(ctx, s.submittedKey(id), "1", s.ttl).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("views: mark submitted: %w", err)
	}
	return first, nil
}

// Close leaves the shared client open; the cache owns it.
func (s *RedisStore) Close() error {
	return nil
}
