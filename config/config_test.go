package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr bool
		verify  func(t *testing.T, cfg *Config)
	}{
		{
			name: "missing file falls back to defaults",
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultAPITimeout, cfg.API.Timeout)
				assert.Equal(t, "file", cfg.Storage.Backend)
				assert.NotEmpty(t, cfg.Storage.Path)
				assert.Equal(t, "esportivo", cfg.Storage.NATS.Bucket)
			},
		},
		{
			name: "file values are read",
			file: `
api:
  base_url: https://api.example.com
  timeout: 3s
storage:
  backend: memory
observability:
  log_level: debug
`,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
				assert.Equal(t, 3*time.Second, cfg.API.Timeout)
				assert.Equal(t, "memory", cfg.Storage.Backend)
				assert.Equal(t, "debug", cfg.Observability.LogLevel)
			},
		},
		{
			name: "env overrides file",
			file: `
api:
  base_url: https://api.example.com
`,
			env: map[string]string{
				"ESPORTIVO_API_URL":         "https://override.example.com",
				"ESPORTIVO_STORAGE_BACKEND": "postgres",
				"DATABASE_URL":              "postgres://u:p@localhost/db",
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://override.example.com", cfg.API.BaseURL)
				assert.Equal(t, "postgres", cfg.Storage.Backend)
				assert.Equal(t, "postgres://u:p@localhost/db", cfg.Storage.Postgres.DSN)
			},
		},
		{
			name:    "invalid timeout",
			env:     map[string]string{"ESPORTIVO_API_TIMEOUT": "soon"},
			wantErr: true,
		},
		{
			name:    "nats backend without url",
			env:     map[string]string{"ESPORTIVO_STORAGE_BACKEND": "nats", "NATS_URL": ""},
			wantErr: true,
		},
		{
			name: "redis backend from env",
			env:  map[string]string{"ESPORTIVO_STORAGE_BACKEND": "redis", "REDIS_URL": "redis://localhost:6379/0"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "redis", cfg.Storage.Backend)
				assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.Redis.URL)
				assert.Equal(t, "esportivo:", cfg.Storage.Redis.Prefix)
			},
		},
		{
			name:    "redis backend without url",
			env:     map[string]string{"ESPORTIVO_STORAGE_BACKEND": "redis", "REDIS_URL": ""},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			file:    "storage:\n  backend: floppy\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "absent.yaml")
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			cfg, err := LoadConfig(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.verify(t, cfg)
		})
	}
}
