package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// Admin is the platform identity. It is injected at process start and
	// resolved through the same gate as every other role.
	Admin AdminConfig

	Mongo     MongoConfig
	Redis     RedisConfig
	Memcached MemcachedConfig
	AMQP      AMQPConfig
	Uploads   UploadsConfig

	NotifyWorkers int `env:"NOTIFY_WORKERS, default=4"`
}

type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=staysmart"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type MemcachedConfig struct {
	Addr           string `env:"MEMCACHED_ADDR,   default=localhost:11211"`
	SearchTTLSecs  int    `env:"SEARCH_CACHE_TTL, default=60"`
}

type AMQPConfig struct {
	// URL left empty disables the broker; notices go to the log instead.
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE, default=staysmart.notifications"`
}

type UploadsConfig struct {
	Dir string `env:"UPLOAD_DIR, default=uploads"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
