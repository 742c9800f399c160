package session

import (
	"context"
	"errors"
	"time"

	"spacia-portal/pkg/sessionstore"
)

// RedisStore keeps sessions in Redis so they survive portal restarts.
type RedisStore struct {
	store *sessionstore.Store
}

func NewRedisStore(store *sessionstore.Store) *RedisStore {
	return &RedisStore{store: store}
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	ttl := s.TTL(time.Now())
	if ttl <= 0 {
		return ErrNotFound
	}
	return r.store.Set(ctx, s.ID, s, ttl)
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	var s Session
	if err := r.store.Get(ctx, id, &s); err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if s.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}
