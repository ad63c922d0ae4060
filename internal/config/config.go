package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort         = "8080"
	defaultDataDir      = "data"
	defaultStoreBackend = "file"
	defaultDatabaseURL  = "file:buildledger.db?_pragma=busy_timeout(5000)"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTTTL       = "24h"
	defaultLogLevel     = "info"
	defaultSnowflake    = "1"

	BackendFile = "file"
	BackendSQL  = "sql"
)

type Config struct {
	AppEnv         string
	Port           string
	DataDir        string
	StoreBackend   string
	DatabaseURL    string
	JWTSecret      string
	JWTTTL         time.Duration
	LogLevel       string
	AllowedOrigins []string
	SnowflakeNode  int64
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honoured.
func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DataDir = strings.TrimSpace(getEnv("DATA_DIR", defaultDataDir))
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", defaultStoreBackend)))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	node := strings.TrimSpace(getEnv("SNOWFLAKE_NODE", defaultSnowflake))
	cfg.SnowflakeNode, err = strconv.ParseInt(node, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SNOWFLAKE_NODE value %q: %w", node, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.SnowflakeNode < 0 || cfg.SnowflakeNode > 1023 {
		return fmt.Errorf("SNOWFLAKE_NODE must be between 0 and 1023")
	}

	switch cfg.StoreBackend {
	case BackendFile:
		if cfg.DataDir == "" {
			return fmt.Errorf("DATA_DIR must not be empty when STORE_BACKEND=file")
		}
	case BackendSQL:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must not be empty when STORE_BACKEND=sql")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of: file, sql")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
