package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 8000, cfg.AppPort)
		assert.Equal(t, "/data/yanyu.db", cfg.DatabasePath)
		assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)
		assert.Equal(t, 30*time.Second, cfg.OllamaStartupTimeout)
		assert.Empty(t, cfg.CompletionsURL)
		assert.Equal(t, "gpt-4", cfg.CompletionsModel)
		assert.Zero(t, cfg.ChatRateLimit)
		assert.Equal(t, 10, cfg.ChatRateBurst)
		assert.Equal(t, "INFO", cfg.LogLevel)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())
		t.Setenv("APP_PORT", "9100")
		t.Setenv("OLLAMA_URL", "http://ollama:11434")
		t.Setenv("OLLAMA_STARTUP_TIMEOUT", "5s")
		t.Setenv("CHAT_RATE_LIMIT", "2.5")
		t.Setenv("LOG_LEVEL", "DEBUG")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 9100, cfg.AppPort)
		assert.Equal(t, "http://ollama:11434", cfg.OllamaURL)
		assert.Equal(t, 5*time.Second, cfg.OllamaStartupTimeout)
		assert.Equal(t, 2.5, cfg.ChatRateLimit)
		assert.Equal(t, "DEBUG", cfg.LogLevel)
	})
}
