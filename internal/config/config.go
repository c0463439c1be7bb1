package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Bot       BotConfig
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	Listing   ListingConfig
	Relay     RelayConfig
	KeepAlive KeepAliveConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
	// ExternalBaseURL is the public URL this server is reachable at,
	// used for the Telegram webhook and keep-alive pings.
	ExternalBaseURL string `envconfig:"EXTERNAL_BASE_URL" required:"true"`
}

type BotConfig struct {
	Token    string `envconfig:"BOT_TOKEN" required:"true"`
	AdminID  int64  `envconfig:"ADMIN_ID" required:"true"`
	Username string `envconfig:"BOT_USERNAME" required:"true"`
	// WebhookSecret guards the webhook path. Falls back to the bot token
	// when unset.
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`
}

func (c BotConfig) Secret() string {
	if c.WebhookSecret != "" {
		return c.WebhookSecret
	}
	return c.Token
}

type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"videograb"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"videograb"`
	DBName   string `envconfig:"POSTGRES_DB" default:"videograb"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type MinIOConfig struct {
	Endpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	AccessKey string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	SecretKey string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	Bucket    string `envconfig:"MINIO_BUCKET" default:"thumbnails"`
	UseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	// PublicBaseURL overrides the URL objects are served from, for
	// deployments where the bucket sits behind a CDN.
	PublicBaseURL string `envconfig:"MINIO_PUBLIC_BASE_URL"`
}

type RedisConfig struct {
	// Addr empty means the listing cache stays in process memory.
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RabbitMQConfig struct {
	// URL empty disables catalog event publishing.
	URL string `envconfig:"RABBITMQ_URL"`
}

type ListingConfig struct {
	PageSize int           `envconfig:"LISTING_PAGE_SIZE" default:"30"`
	CacheTTL time.Duration `envconfig:"LISTING_CACHE_TTL" default:"5m"`
}

type RelayConfig struct {
	FetchTimeout time.Duration `envconfig:"RELAY_FETCH_TIMEOUT" default:"30s"`
}

type KeepAliveConfig struct {
	// Interval 0 disables the self-ping loop.
	Interval time.Duration `envconfig:"KEEPALIVE_INTERVAL" default:"10m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
