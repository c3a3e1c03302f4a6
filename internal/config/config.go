package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Security SecurityConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Cron     CronConfig
	Metrics  MetricsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"` // development, staging, production
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`          // debug, info, warn, error
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                string        `env:"DATABASE_URL"`
	MaxConnections     int           `env:"DATABASE_MAX_CONNECTIONS" env-default:"10"`
	MaxIdleConnections int           `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"5"`
	ConnMaxLifetime    time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" env-default:"5m"`
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret             string        `env:"JWT_SECRET"`
	RefreshSecret      string        `env:"JWT_REFRESH_SECRET"`
	AccessTokenExpiry  time.Duration `env:"JWT_ACCESS_TOKEN_EXPIRY" env-default:"1h"`
	RefreshTokenExpiry time.Duration `env:"JWT_REFRESH_TOKEN_EXPIRY" env-default:"168h"`
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type,Authorization"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	BcryptCost       int           `env:"BCRYPT_COST" env-default:"12"`
	EnableAuditLog   bool          `env:"ENABLE_AUDIT_LOGGING" env-default:"true"`
	MaxLoginPerEmail int           `env:"LOGIN_RATE_LIMIT_EMAIL" env-default:"5"`
	LoginEmailWindow time.Duration `env:"LOGIN_RATE_WINDOW_EMAIL" env-default:"15m"`
	MaxLoginPerIP    int           `env:"LOGIN_RATE_LIMIT_IP" env-default:"20"`
	LoginIPWindow    time.Duration `env:"LOGIN_RATE_WINDOW_IP" env-default:"1h"`
}

// RedisConfig holds the itinerary cache connection. An empty Addr disables caching.
type RedisConfig struct {
	Addr              string        `env:"REDIS_ADDR"`
	Password          string        `env:"REDIS_PASSWORD"`
	DB                int           `env:"REDIS_DB" env-default:"0"`
	ItineraryCacheTTL time.Duration `env:"ITINERARY_CACHE_TTL" env-default:"30s"`
}

// KafkaConfig holds booking event publishing configuration.
// With no brokers configured events are written to the log instead.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
	Topic   string   `env:"KAFKA_TOPIC" env-default:"travel-agency.bookings"`
}

// CronConfig holds background job configuration
type CronConfig struct {
	Enabled            bool `env:"CRON_ENABLED" env-default:"true"`
	AuditRetentionDays int  `env:"AUDIT_RETENTION_DAYS" env-default:"90"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" env-default:"true"`
	Path    string `env:"METRICS_PATH" env-default:"/metrics"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.JWT.RefreshSecret == "" {
		return fmt.Errorf("JWT_REFRESH_SECRET is required")
	}

	if c.JWT.Secret == c.JWT.RefreshSecret {
		return fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}

	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
