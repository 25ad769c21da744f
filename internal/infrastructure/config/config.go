package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string   `env:"PORT,         default=8080"`
	Env          string   `env:"ENV,          default=development"`
	JWTSecret    string   `env:"JWT_SECRET"`
	LogLevel     string   `env:"LOG_LEVEL,    default=info"`
	AllowOrigins []string `env:"CORS_ORIGINS, default=http://localhost:3000"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Catalog CatalogConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type CatalogConfig struct {
	// CacheTTL bounds how stale a cached product listing may be.
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL,     default=5m"`
	// QueryTimeout bounds the catalog store read on a cache miss.
	QueryTimeout time.Duration `env:"CATALOG_QUERY_TIMEOUT, default=15s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
