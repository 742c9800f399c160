package sessionstore

import (
	"context"
	"encoding/json"
	"time"

	"spacia-portal/pkg/logger"
	"spacia-portal/pkg/metrics"

	"github.com/go-redis/redis/v8"
)

// Store reads and writes JSON values under session keys.
type Store struct {
	client Client
}

func New(client Client) *Store {
	return &Store{client: client}
}

// Set stores value under the session id with the given expiration.
func (s *Store) Set(ctx context.Context, id string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		metrics.SessionStoreErrorsTotal.WithLabelValues("set_marshal").Inc()
		logger.GlobalLogger.Errorf("failed to marshal session %s: %v", id, err)
		return NewStoreError("marshal", err, false)
	}

	start := time.Now()
	err = s.client.Set(ctx, SessionKey(id), data, expiration).Err()
	metrics.SessionStoreDuration.WithLabelValues("set").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SessionStoreErrorsTotal.WithLabelValues("set").Inc()
		logger.GlobalLogger.Errorf("failed to set session %s: %v", id, err)
		return NewStoreError("set", err, true)
	}
	return nil
}

// Get loads the value under the session id into dest. A missing key yields ErrNotFound.
func (s *Store) Get(ctx context.Context, id string, dest interface{}) error {
	start := time.Now()
	val, err := s.client.Get(ctx, SessionKey(id)).Result()
	metrics.SessionStoreDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		metrics.SessionStoreErrorsTotal.WithLabelValues("get").Inc()
		logger.GlobalLogger.Errorf("failed to get session %s: %v", id, err)
		return NewStoreError("get", err, true)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.SessionStoreErrorsTotal.WithLabelValues("get_unmarshal").Inc()
		logger.GlobalLogger.Errorf("failed to unmarshal session %s: %v", id, err)
		return NewStoreError("unmarshal", err, false)
	}
	return nil
}

// Delete removes the session id. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.client.Del(ctx, SessionKey(id)).Err()
	metrics.SessionStoreDuration.WithLabelValues("delete").Observe(time.Since(start).Seconds())
	if err != nil && err != redis.Nil {
		metrics.SessionStoreErrorsTotal.WithLabelValues("delete").Inc()
		logger.GlobalLogger.Errorf("failed to delete session %s: %v", id, err)
		return NewStoreError("delete", err, true)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.client.Close()
}
