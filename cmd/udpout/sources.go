package main

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/adapter/secondary/kafkasource"
	"github.com/ruudy-sib/udpout/internal/adapter/secondary/natssource"
	"github.com/ruudy-sib/udpout/internal/adapter/secondary/redisstore"
	"github.com/ruudy-sib/udpout/internal/config"
	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// sourceSet owns every enabled event source together with the clients and
// health checks that back them.
type sourceSet struct {
	sources     []secondary.EventSource
	checks      []secondary.HealthChecker
	redisClient goredis.UniversalClient
}

func newSourceSet(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sourceSet, error) {
	set := &sourceSet{}

	if cfg.HasSource(domain.SourceRedis) {
		client, err := redisstore.NewClient(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("creating redis client: %w", err)
		}
		set.redisClient = client
		set.sources = append(set.sources, redisstore.NewListSource(client, cfg.RedisListKey, logger))
		set.checks = append(set.checks, redisstore.NewHealthCheck(client))
	}

	if cfg.HasSource(domain.SourceKafka) {
		set.sources = append(set.sources, kafkasource.NewSource(cfg, logger))
	}

	if cfg.HasSource(domain.SourceNATS) {
		src, err := natssource.Connect(ctx, cfg, logger)
		if err != nil {
			_ = set.Close()
			return nil, fmt.Errorf("creating nats source: %w", err)
		}
		set.sources = append(set.sources, src)
		set.checks = append(set.checks, natssource.NewHealthCheck(src.Conn()))
	}

	return set, nil
}

// Close releases every source, then the shared redis client.
func (s *sourceSet) Close() error {
	var errs []error
	for _, src := range s.sources {
		if err := src.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s source: %w", src.Name(), err))
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing redis client: %w", err))
		}
	}
	return errors.Join(errs...)
}
