package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	JWT           JWTConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Cache         CacheConfig
	Storage       StorageConfig
	EventTriggers EventTriggerConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

type JWTConfig struct {
	Secret   string
	TTLHours int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint string
	ServiceName      string
	ServiceVersion   string
}

type CacheConfig struct {
	ProfileTTLSeconds    int  // Candidate profile cache TTL in seconds
	DisableProfilesCache bool // Read from DB on every match request
}

type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
}

type EventTriggerConfig struct {
	ConfessionReportedTriggerURL    string
	AnnouncementPublishedTriggerURL string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("JWT_TTL_HOURS", 24)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "campusconnect-api")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("PROFILE_CACHE_TTL", 300)
	v.SetDefault("DISABLE_PROFILES_CACHE", false)
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: allowedOrigins,
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			MinConns: v.GetInt32("DB_MIN_CONNS"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("JWT_SECRET"),
			TTLHours: v.GetInt("JWT_TTL_HOURS"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:      v.GetString("O11Y_SERVICE_NAME"),
			ServiceVersion:   v.GetString("O11Y_SERVICE_VERSION"),
		},
		Cache: CacheConfig{
			ProfileTTLSeconds:    v.GetInt("PROFILE_CACHE_TTL"),
			DisableProfilesCache: v.GetBool("DISABLE_PROFILES_CACHE"),
		},
		Storage: StorageConfig{
			AccessKeyID:     v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("STORAGE_ENDPOINT"),
			Region:          v.GetString("STORAGE_REGION"),
		},
		EventTriggers: EventTriggerConfig{
			ConfessionReportedTriggerURL:    v.GetString("CONFESSION_REPORTED_TRIGGER_URL"),
			AnnouncementPublishedTriggerURL: v.GetString("ANNOUNCEMENT_PUBLISHED_TRIGGER_URL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks required configuration. The JWT secret is the keystone of
// the stateless auth scheme; refusing to start without it beats issuing
// tokens signed with an empty key.
func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.TTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive, got %d", c.JWT.TTLHours)
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
