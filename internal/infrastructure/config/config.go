package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Two distinct symmetric secrets: one per token class. Rotation happens
	// at process restart; outstanding tokens signed with an old secret are
	// simply rejected.
	JWTSecret        string `env:"JWT_SECRET,         default=jwt_secret"`
	JWTRefreshSecret string `env:"JWT_REFRESH_SECRET, default=jwt_secret_refresh"`

	MySQL MySQLConfig
	Redis RedisConfig
}

type MySQLConfig struct {
	Host     string `env:"MYSQL_HOST,     default=localhost"`
	Port     string `env:"MYSQL_PORT,     default=3306"`
	User     string `env:"MYSQL_USER,     default=root"`
	Password string `env:"MYSQL_PASSWORD"`
	Database string `env:"MYSQL_DB,       default=alvearium"`
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
