package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "ENV", "PORT", "DATA_DIR", "STORE_BACKEND", "DATABASE_URL",
		"JWT_SECRET", "JWT_TTL", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "SNOWFLAKE_NODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(1), cfg.SnowflakeNode)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "SQL")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/ledger")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, ,https://admin.example.com")
	t.Setenv("SNOWFLAKE_NODE", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQL, cfg.StoreBackend)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(7), cfg.SnowflakeNode)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad ttl", env: map[string]string{"JWT_TTL": "soon"}},
		{name: "zero ttl", env: map[string]string{"JWT_TTL": "0s"}},
		{name: "bad backend", env: map[string]string{"STORE_BACKEND": "redis"}},
		{name: "bad node", env: map[string]string{"SNOWFLAKE_NODE": "abc"}},
		{name: "node out of range", env: map[string]string{"SNOWFLAKE_NODE": "4096"}},
		{name: "default secret in prod", env: map[string]string{"APP_ENV": "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
