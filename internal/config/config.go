package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort              int           `mapstructure:"APP_PORT"`
	DatabasePath         string        `mapstructure:"DATABASE_PATH"`
	OllamaURL            string        `mapstructure:"OLLAMA_URL"`
	OllamaStartupTimeout time.Duration `mapstructure:"OLLAMA_STARTUP_TIMEOUT"`
	CompletionsURL       string        `mapstructure:"COMPLETIONS_URL"`
	CompletionsAPIKey    string        `mapstructure:"COMPLETIONS_API_KEY"`
	CompletionsModel     string        `mapstructure:"COMPLETIONS_MODEL"`
	ChatRateLimit        float64       `mapstructure:"CHAT_RATE_LIMIT"`
	ChatRateBurst        int           `mapstructure:"CHAT_RATE_BURST"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/yanyu.db")
	viper.SetDefault("OLLAMA_URL", "http://localhost:11434")
	viper.SetDefault("OLLAMA_STARTUP_TIMEOUT", "30s")
	// Empty disables the completions relay.
	viper.SetDefault("COMPLETIONS_URL", "")
	viper.SetDefault("COMPLETIONS_API_KEY", "")
	viper.SetDefault("COMPLETIONS_MODEL", "gpt-4")
	viper.SetDefault("CHAT_RATE_LIMIT", 0)
	viper.SetDefault("CHAT_RATE_BURST", 10)
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
