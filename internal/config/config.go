package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	Dashboard DashboardConfig
	Storage   StorageConfig
	LogLevel  string `mapstructure:"log_level"`
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// LLMConfig holds the generative-AI gateway configuration
type LLMConfig struct {
	Provider          string `mapstructure:"provider"`
	BaseURL           string `mapstructure:"base_url"`
	APIKey            string `mapstructure:"api_key"`
	Model             string `mapstructure:"model"`
	SystemInstruction string `mapstructure:"system_instruction"`
}

// DashboardConfig holds the analytics backend configuration
type DashboardConfig struct {
	BackendURL string `mapstructure:"backend_url"`
}

// StorageConfig holds the durable storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads the configuration from the config.yaml file.
// CONFIG_PATH overrides the file location; HELIXAR_* environment
// variables override individual keys. A missing file is not an error:
// the defaults describe a fully local setup.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	// Empty defaults register the keys with viper; without them
	// AutomaticEnv never surfaces env-only values into Unmarshal.
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.system_instruction", "")
	v.SetDefault("dashboard.backend_url", "http://127.0.0.1:5000")
	v.SetDefault("storage.path", "helixar.db")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("HELIXAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
