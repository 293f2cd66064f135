package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/domain/entity"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// ListSource implements secondary.EventSource by popping JSON events off the
// head of a Redis list. Producers RPUSH; popped entries are gone for good.
type ListSource struct {
	client redis.UniversalClient
	key    string
	logger *zap.Logger
}

// NewListSource creates a Redis list backed event source.
func NewListSource(client redis.UniversalClient, key string, logger *zap.Logger) secondary.EventSource {
	return &ListSource{
		client: client,
		key:    key,
		logger: logger.Named("redis-source"),
	}
}

// Name returns "redis".
func (s *ListSource) Name() string {
	return "redis"
}

// Fetch pops up to limit entries. Entries that are not JSON objects are
// logged and skipped.
func (s *ListSource) Fetch(ctx context.Context, limit int) ([]*entity.Event, error) {
	members, err := s.client.LPopCount(ctx, s.key, limit).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("popping events from redis: %w", err)
	}

	events := make([]*entity.Event, 0, len(members))
	for _, member := range members {
		event, err := entity.DecodeEvent([]byte(member))
		if err != nil {
			s.logger.Warn("invalid event data in redis",
				zap.Error(err),
				zap.String("raw", member),
			)
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

// Close is a no-op: the client is shared with the health check and closed
// by its owner.
func (s *ListSource) Close() error {
	return nil
}
