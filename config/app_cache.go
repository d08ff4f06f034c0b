package config

import (
	"context"
	"errors"
	"time"

	"github.com/akeren/creatorchain/internal/log"
	pkgredis "github.com/akeren/creatorchain/pkg/redis"
	"github.com/akeren/creatorchain/pkg/utils"
	"github.com/go-redis/redis/v8"
)

const defaultCacheKeyPrefix = "creatorchain:"

type Cache interface {
	// Get returns ("", nil) when a key is not found.
	Get(ctx context.Context, key string) (string, error)
	// Set uses ttl=0 for no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// RedisClientProvider is implemented by caches that can hand out their Redis
// client for Lua scripts and atomic view transitions.
type RedisClientProvider interface {
	GetClient() *redis.Client
}

var ErrCacheNotConfigured = errors.New("cache host is not configured")

type CacheConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

func NewCacheConfig() *CacheConfig {
	return &CacheConfig{
		Host:      utils.GetEnvTrimmed("REDIS_HOST"),
		Port:      utils.GetEnvTrimmedOrDefault("REDIS_PORT", "6379"),
		Password:  GetValueFromEnvironmentVariable("REDIS_PASSWORD", ""),
		DB:        utils.GetEnvPositiveInt("REDIS_DB", 0),
		KeyPrefix: utils.GetEnvTrimmedOrDefault("REDIS_KEY_PREFIX", defaultCacheKeyPrefix),
	}
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc.Host != ""
}

func (cc *CacheConfig) NewCache(logger *log.Logger) (Cache, error) {
	if !cc.IsConfigured() {
		return nil, ErrCacheNotConfigured
	}

	cache, err := pkgredis.NewRedisCache(&pkgredis.Config{
		Host:      cc.Host,
		Port:      cc.Port,
		Password:  cc.Password,
		DB:        cc.DB,
		KeyPrefix: cc.KeyPrefix,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Cache (Redis) connected", "host", cc.Host, "db", cc.DB, "prefix", cc.KeyPrefix)
	return cache, nil
}

// NewCacheOrNil never fails: the service runs on in-memory stores when Redis
// is absent or unreachable.
func (cc *CacheConfig) NewCacheOrNil(logger *log.Logger) Cache {
	if !cc.IsConfigured() {
		logger.Info("Cache (Redis) is not configured; using in-memory stores")
		return nil
	}

	cache, err := cc.NewCache(logger)
	if err != nil {
		logger.Error("Failed to create Cache (Redis); using in-memory stores", "error", err)
		return nil
	}
	return cache
}

func GetRedisClient(cache Cache) *redis.Client {
	if provider, ok := cache.(RedisClientProvider); ok {
		return provider.GetClient()
	}
	return nil
}

func CloseCache(cache Cache, logger *log.Logger) error {
	if cache == nil {
		return nil
	}

	if err := cache.Close(); err != nil {
		logger.Error("Failed to close cache", "error", err)
		return err
	}

	logger.Info("Cache connection closed")
	return nil
}
