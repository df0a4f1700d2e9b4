package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Server   Server
	Log      Log
	Postgres Postgres
	Kafka    Kafka
	Redis    RedisConfig
	Outbox   Outbox
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"MAIDLINK_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `env:"MAIDLINK_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RequestTimeout  time.Duration `env:"MAIDLINK_REQUEST_TIMEOUT" env-default:"30s"`
	JWTSigningKey   string        `env:"JWT_SIGNING_KEY" env-default:"dev-secret-key-change-in-production"`
	JWTIssuer       string        `env:"JWT_ISSUER" env-default:"maidlink"`
	JWTAudience     string        `env:"JWT_AUDIENCE" env-default:"maidlink-api"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// Postgres selects the store backend; an empty DSN keeps profiles in memory.
type Postgres struct {
	DSN             string        `env:"POSTGRES_DSN"`
	MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" env-default:"30m"`
	MigrateOnStart  bool          `env:"POSTGRES_MIGRATE_ON_START" env-default:"true"`
}

// Kafka is disabled when Brokers is empty.
type Kafka struct {
	Brokers           []string `env:"KAFKA_BROKERS" env-separator:","`
	Topic             string   `env:"KAFKA_TOPIC" env-default:"maidlink.profiles"`
	Partitions        int32    `env:"KAFKA_TOPIC_PARTITIONS" env-default:"3"`
	ReplicationFactor int16    `env:"KAFKA_TOPIC_REPLICATION" env-default:"1"`
}

// RedisConfig is disabled when URL is empty.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	Stream       string        `env:"REDIS_STREAM" env-default:"maidlink:profiles"`
	StreamMaxLen int64         `env:"REDIS_STREAM_MAXLEN" env-default:"100000"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" env-default:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" env-default:"3s"`
}

type Outbox struct {
	PollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" env-default:"1s"`
	BatchSize    int           `env:"OUTBOX_BATCH_SIZE" env-default:"100"`
}

// Load reads envFile into the environment when it exists, then parses the
// environment. Variables already set take precedence over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if cfg.Outbox.BatchSize <= 0 {
		return nil, fmt.Errorf("OUTBOX_BATCH_SIZE must be positive, got %d", cfg.Outbox.BatchSize)
	}
	if cfg.Outbox.PollInterval <= 0 {
		return nil, fmt.Errorf("OUTBOX_POLL_INTERVAL must be positive, got %s", cfg.Outbox.PollInterval)
	}
	return &cfg, nil
}

// MustLoad panics on configuration errors; only call it while the process starts.
func MustLoad(envFile string) *Config {
	cfg, err := Load(envFile)
	if err != nil {
		panic("config: " + err.Error())
	}
	return cfg
}
