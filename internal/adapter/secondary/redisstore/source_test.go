package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSource(t *testing.T) (*miniredis.Miniredis, *ListSource) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	src := NewListSource(client, "udpout:events", zap.NewNop()).(*ListSource)
	return mr, src
}

func TestListSource_FetchDecodesInOrder(t *testing.T) {
	mr, src := newTestSource(t)
	mr.RPush("udpout:events", `{"message":"one"}`, `{"message":"two"}`, `{"message":"three"}`)

	events, err := src.Fetch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "one", events[0].Fields["message"])
	assert.Equal(t, "two", events[1].Fields["message"])

	rest, err := mr.List("udpout:events")
	require.NoError(t, err)
	assert.Equal(t, []string{`{"message":"three"}`}, rest)
}

func TestListSource_FetchEmpty(t *testing.T) {
	_, src := newTestSource(t)

	events, err := src.Fetch(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestListSource_SkipsInvalidEntries(t *testing.T) {
	mr, src := newTestSource(t)
	mr.RPush("udpout:events", `not json`, `[1,2]`, `{"message":"ok","@id":"evt-7"}`)

	events, err := src.Fetch(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "evt-7", events[0].ID.String())
}

func TestListSource_ServerError(t *testing.T) {
	mr, src := newTestSource(t)
	mr.SetError("ERR simulated failure")

	_, err := src.Fetch(context.Background(), 10)
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	check := NewHealthCheck(client)
	assert.Equal(t, "redis", check.Name())
	assert.NoError(t, check.Check(context.Background()))

	mr.Close()
	assert.Error(t, check.Check(context.Background()))
}
