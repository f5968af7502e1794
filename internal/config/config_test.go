package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"COPILOT_API_URL", "COPILOT_API_TOKEN", "COPILOT_API_MODEL", "COPILOT_API_PROVIDER",
		"CAFE_STORAGE_DRIVER", "CAFE_DATA_DIR", "CAFE_DATABASE_DSN", "CAFE_PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, DefaultModel, cfg.Assistant.Model)
	assert.False(t, cfg.Assistant.Configured())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte(`
server:
  port: 7000
storage:
  driver: sqlite3
  dsn: cafe.db
assistant:
  url: https://file.example/v1/chat
  token: from-file
  model: file-model
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	t.Setenv("COPILOT_API_TOKEN", "from-env")
	t.Setenv("CAFE_PORT", "7100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7100, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "cafe.db", cfg.Storage.DSN)
	assert.Equal(t, "https://file.example/v1/chat", cfg.Assistant.URL)
	assert.Equal(t, "from-env", cfg.Assistant.Token)
	assert.Equal(t, "file-model", cfg.Assistant.Model)
	assert.True(t, cfg.Assistant.Configured())
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("CAFE_PORT", "eighty")

	_, err := Load("")
	assert.Error(t, err)
}

func TestAssistantConfig_Configured(t *testing.T) {
	tests := []struct {
		url, token string
		want       bool
	}{
		{"", "", false},
		{"https://api.example/chat", "", false},
		{"", "secret", false},
		{"https://api.example/chat", "secret", true},
	}
	for _, tt := range tests {
		got := AssistantConfig{URL: tt.url, Token: tt.token}.Configured()
		if got != tt.want {
			t.Errorf("Configured(%q, %q) = %v, want %v", tt.url, tt.token, got, tt.want)
		}
	}
}
