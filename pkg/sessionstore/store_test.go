package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	values  map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.values[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeClient) Close() error { return nil }

type record struct {
	Token string `json:"token"`
}

func TestStoreRoundTrip(t *testing.T) {
	client := newFakeClient()
	store := New(client)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "abc", record{Token: "t1"}, time.Hour))
	assert.Equal(t, time.Hour, client.ttls[SessionKey("abc")])

	var got record
	require.NoError(t, store.Get(ctx, "abc", &got))
	assert.Equal(t, "t1", got.Token)

	require.NoError(t, store.Delete(ctx, "abc"))
	assert.ErrorIs(t, store.Get(ctx, "abc", &got), ErrNotFound)
}

func TestStoreGetFailureIsStoreError(t *testing.T) {
	client := newFakeClient()
	client.failGet = errors.New("connection reset")
	store := New(client)

	var got record
	err := store.Get(context.Background(), "abc", &got)
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "get", storeErr.Operation)
	assert.True(t, storeErr.Retryable)
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "spacia:session:xyz", SessionKey("xyz"))
}
