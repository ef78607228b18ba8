package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionTTL is how long an issued session stays valid.
	SessionTTL time.Duration `env:"SESSION_TTL, default=168h"`
	// SessionBackend selects the session store: "redis" or "memory".
	SessionBackend string `env:"SESSION_BACKEND, default=redis"`
	// ChallengeTTL is how long an issued challenge can be redeemed.
	ChallengeTTL time.Duration `env:"CHALLENGE_TTL, default=5m"`
	// SweepInterval is how often expired sessions are purged.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL, default=24h"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
