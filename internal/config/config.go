package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Environment           string
	Port                  string
	DatabaseURL           string
	RedisURL              string
	JWTSecret             string
	JWTIssuer             string
	AccessTTLSeconds      int64
	RefreshTTLSeconds     int64
	MediaStoragePath      string
	MaxUploadBytes        int64
	MetricsDiskPath       string
	MetricsSampleSeconds  int
	CorsOrigins           []string
	LogDir                string
	LogRetentionDays      int
	LogLevel              string
	RateLimitRequests     int
	RateLimitWindow       time.Duration
	AuthRateLimitRequests int
	RequestTimeout        time.Duration
	AdminEmail            string
	AdminPassword         string
}

func Load() Config {
	return Config{
		Environment:           strings.ToLower(envOr("APP_ENV", "production")),
		Port:                  envOr("PORT", "8080"),
		DatabaseURL:           mustEnv("DATABASE_URL"),
		RedisURL:              envOr("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:             mustEnv("JWT_SECRET"),
		JWTIssuer:             envOr("JWT_ISSUER", "pathways"),
		AccessTTLSeconds:      int64(envOrInt("ACCESS_TTL_SECONDS", 14400)),
		RefreshTTLSeconds:     int64(envOrInt("REFRESH_TTL_SECONDS", 1209600)),
		MediaStoragePath:      envOr("MEDIA_STORAGE_PATH", "storage/media"),
		MaxUploadBytes:        int64(envOrInt("MAX_UPLOAD_BYTES", 5<<20)),
		MetricsDiskPath:       envOr("METRICS_DISK_PATH", "storage/media"),
		MetricsSampleSeconds:  envOrInt("METRICS_SAMPLE_INTERVAL", 15),
		CorsOrigins:           parseCSV(envOr("CORS_ORIGINS", "")),
		LogDir:                envOr("LOG_DIR", "storage/logs"),
		LogRetentionDays:      envOrInt("LOG_RETENTION_DAYS", 7),
		LogLevel:              envOr("LOG_LEVEL", "info"),
		RateLimitRequests:     envOrInt("RATE_LIMIT_REQUESTS", 300),
		RateLimitWindow:       time.Duration(envOrInt("RATE_LIMIT_WINDOW_SECONDS", 900)) * time.Second,
		AuthRateLimitRequests: envOrInt("AUTH_RATE_LIMIT_REQUESTS", 20),
		RequestTimeout:        time.Duration(envOrInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		AdminEmail:            envOr("ADMIN_EMAIL", ""),
		AdminPassword:         envOr("ADMIN_PASSWORD", ""),
	}
}

// IsDevelopment reports whether internal error detail may be exposed to clients.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
