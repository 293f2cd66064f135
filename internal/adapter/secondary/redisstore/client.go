package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/config"
)

// NewClient creates a Redis client for the configured mode and verifies the
// connection with a ping.
func NewClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (redis.UniversalClient, error) {
	var client redis.UniversalClient

	switch cfg.RedisMode {
	case "sentinel":
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    cfg.RedisMasterName,
			SentinelAddrs: cfg.RedisSentinelAddrs,
			Password:      cfg.RedisPassword,
			DB:            cfg.RedisDB,
		})
	case "cluster":
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    cfg.RedisClusterAddrs,
			Password: cfg.RedisPassword,
		})
	case "", "standalone":
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown redis mode %q", cfg.RedisMode)
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("connected to redis",
		zap.String("mode", cfg.RedisMode),
		zap.String("addr", cfg.RedisAddr),
	)
	return client, nil
}
