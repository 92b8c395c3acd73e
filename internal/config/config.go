package config

import (
	"time"

	pkgconfig "github.com/Hamzahxou/api-x/pkg/config"
	"github.com/Hamzahxou/api-x/pkg/log"
	"github.com/Hamzahxou/api-x/pkg/middleware"
	"github.com/Hamzahxou/api-x/pkg/storage"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Identity middleware.VerifierConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Media    MediaConfig
	Events   EventsConfig
	Log      log.Config
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	FilePath        string `mapstructure:"file_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type StorageConfig struct {
	Driver string              `mapstructure:"driver"` // s3, local
	Local  storage.LocalConfig `mapstructure:"local"`
	S3     storage.S3Config    `mapstructure:"s3"`
}

type MediaConfig struct {
	MaxWidth    int           `mapstructure:"max_width"`
	MaxHeight   int           `mapstructure:"max_height"`
	JPEGQuality int           `mapstructure:"jpeg_quality"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
	URLTTL      time.Duration `mapstructure:"url_ttl"`
}

type EventsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "api_x")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.file_path", "./data/api-x.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("identity.issuer", "")
	v.SetDefault("identity.public_key_pem", "")
	v.SetDefault("identity.hmac_secret", "")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.prefix", "profile")
	v.SetDefault("cache.ttl", "30s")
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local.base_path", "./data/media")
	v.SetDefault("storage.local.base_url", "http://localhost:8080/media")
	v.SetDefault("media.max_width", 800)
	v.SetDefault("media.max_height", 600)
	v.SetDefault("media.jpeg_quality", 85)
	v.SetDefault("media.key_prefix", "posts/")
	v.SetDefault("media.url_ttl", "168h")
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.topic", "engagement-events")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.service_name", "api-x")

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.sslmode", "DB_SSLMODE")
	v.BindEnv("database.file_path", "DB_FILE_PATH")
	v.BindEnv("identity.issuer", "IDENTITY_ISSUER")
	v.BindEnv("identity.public_key_pem", "IDENTITY_PUBLIC_KEY_PEM")
	v.BindEnv("identity.hmac_secret", "IDENTITY_HMAC_SECRET")
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("storage.s3.bucket", "S3_BUCKET")
	v.BindEnv("storage.s3.access_key_id", "S3_ACCESS_KEY_ID")
	v.BindEnv("storage.s3.secret_access_key", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("events.enabled", "EVENTS_ENABLED")
	v.BindEnv("events.brokers", "KAFKA_BROKERS")
	v.BindEnv("events.topic", "KAFKA_TOPIC")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
