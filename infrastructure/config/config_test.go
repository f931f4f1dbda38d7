package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CONFIG_FILE", "SERVER_ADDRESS", "ENVIRONMENT", "IS_LAMBDA", "AWS_LAMBDA_FUNCTION_NAME",
		"LOG_LEVEL", "LOG_FILE", "STORAGE_BACKEND", "STORAGE_PATH", "PERSIST_TIMEOUT",
		"SEED_FILE", "AWS_REGION", "TABLE_NAME", "DYNAMODB_TABLE", "EVENT_BUS_NAME",
		"JWT_SECRET", "JWT_ISSUER", "ENABLE_EVENTS", "ENABLE_METRICS", "ENABLE_CORS",
		"CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, 5*time.Second, cfg.PersistTimeout)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.EnableEvents)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
serverAddress: ":9090"
storageBackend: badger
storagePath: /var/lib/journeys
logLevel: debug
persistTimeout: 2s
allowedOrigins: [https://app.example.com]
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("PERSIST_TIMEOUT", "750")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, StorageBadger, cfg.StorageBackend)
	assert.Equal(t, "/var/lib/journeys", cfg.StoragePath)
	assert.Equal(t, "warn", cfg.LogLevel, "env wins over file")
	assert.Equal(t, 750*time.Millisecond, cfg.PersistTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "postgres"}},
		{"production without secret", map[string]string{"ENVIRONMENT": "production"}},
		{"missing config file", map[string]string{"CONFIG_FILE": "/nonexistent/config.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestValidate_RequiresBackendSettings(t *testing.T) {
	cfg := Defaults()
	cfg.StorageBackend = StorageDynamoDB
	cfg.DynamoDBTable = ""
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.EnableEvents = true
	cfg.EventBusName = ""
	assert.Error(t, cfg.Validate())
}
