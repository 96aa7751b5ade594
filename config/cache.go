package config

import (
	"time"

	"booksmart/utils"
)

type CacheConfig struct {
	RedisURL string
	BoardTTL time.Duration
}

func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		RedisURL: utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
		BoardTTL: utils.GetEnvAsDuration("BOARD_CACHE_TTL", 5*time.Minute),
	}
}
