package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	NewRelic   NewRelicConfig
	Upstream   UpstreamConfig
	Cloudinary CloudinaryConfig
	Media      MediaConfig
	Session    SessionConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// UpstreamConfig holds the fleet server API configuration.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CloudinaryConfig holds the image upload configuration.
type CloudinaryConfig struct {
	UploadURL    string
	CloudName    string
	UploadPreset string
	Timeout      time.Duration
}

// MediaConfig holds the image staging configuration.
type MediaConfig struct {
	StagingDir string
}

// SessionConfig holds driver session configuration.
type SessionConfig struct {
	TTL time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "transfleet-driver-gateway"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnv("FLEET_API_BASE_URL", "http://localhost:3000"),
			Timeout: getDurationEnv("FLEET_API_TIMEOUT", 15*time.Second),
		},
		Cloudinary: CloudinaryConfig{
			UploadURL:    getEnv("CLOUDINARY_UPLOAD_URL", "https://api.cloudinary.com/v1_1/transfleet/image/upload"),
			CloudName:    getEnv("CLOUDINARY_CLOUD_NAME", "transfleet"),
			UploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", "updateStatus"),
			Timeout:      getDurationEnv("CLOUDINARY_TIMEOUT", 60*time.Second),
		},
		Media: MediaConfig{
			StagingDir: getEnv("MEDIA_STAGING_DIR", os.TempDir()+"/transfleet-staging"),
		},
		Session: SessionConfig{
			TTL: getDurationEnv("SESSION_TTL", 24*time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
