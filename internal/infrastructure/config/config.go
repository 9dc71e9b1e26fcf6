package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET, default=dev-secret-change-me"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	// StorageBackend selects where complaints, messages, and users live:
	// "memory" (default, self-contained) or "mongo".
	StorageBackend string `env:"STORAGE_BACKEND, default=memory"`
	// Seed preloads demo complaints, messages, and agents. Only honoured by
	// the memory backend.
	Seed bool `env:"SEED, default=true"`
	// SimulatedLatencyMS adds an artificial delay to service operations to
	// mimic production round-trips during demos. Zero disables it.
	SimulatedLatencyMS int `env:"SIMULATED_LATENCY_MS, default=0"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=resolvenow"`
}

type RedisConfig struct {
	// Addr empty disables Redis; sessions then live in process memory.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// SimulatedLatency returns the configured artificial delay as a duration.
func (c *Config) SimulatedLatency() time.Duration {
	return time.Duration(c.SimulatedLatencyMS) * time.Millisecond
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
