package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Feeds   FeedsConfig   `mapstructure:"feeds"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port string    `mapstructure:"port"`
	TLS  TLSConfig `mapstructure:"tls"`
}

// TLSConfig holds TLS-specific configuration.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// DBConfig holds database-specific configuration.
// Driver is either "sqlite3" or "mysql".
type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// SessionConfig holds session management configuration.
type SessionConfig struct {
	Lifetime int `mapstructure:"lifetime"` // in hours
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// CacheConfig holds configuration for the SQLite-backed cache.
type CacheConfig struct {
	FilePath string `mapstructure:"file_path"`
}

// ChatConfig holds configuration for the assistant completion service.
type ChatConfig struct {
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	Model        string `mapstructure:"model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

// FeedsConfig holds configuration for the external feed aggregator.
type FeedsConfig struct {
	BaseURL       string   `mapstructure:"base_url"`
	Sources       []string `mapstructure:"sources"`
	CacheTTL      int      `mapstructure:"cache_ttl"`     // in seconds
	FetchTimeout  int      `mapstructure:"fetch_timeout"` // in seconds
	PerSourceSize int      `mapstructure:"per_source_size"`
}

const defaultSystemPrompt = "You are a friendly and knowledgeable presentation skills coach. " +
	"Your expertise covers public speaking, slide design, storytelling, " +
	"body language, audience engagement, handling Q&A sessions, overcoming " +
	"stage fright, and structuring presentations effectively. Only answer " +
	"questions related to presentation skills. If asked about unrelated " +
	"topics, politely redirect the conversation back to presentation skills."

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("db.driver", "sqlite3")
	viper.SetDefault("db.dsn", "coach.db")
	viper.SetDefault("session.lifetime", 24)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("cache.file_path", "cache.db")
	viper.SetDefault("chat.base_url", "")
	viper.SetDefault("chat.model", "gpt-4o-mini")
	viper.SetDefault("chat.max_tokens", 1024)
	viper.SetDefault("chat.system_prompt", defaultSystemPrompt)
	viper.SetDefault("feeds.base_url", "https://www.reddit.com")
	viper.SetDefault("feeds.sources", []string{"leadership", "management", "MachineLearning", "artificial"})
	viper.SetDefault("feeds.cache_ttl", 300)
	viper.SetDefault("feeds.fetch_timeout", 10)
	viper.SetDefault("feeds.per_source_size", 15)

	// Set up viper to read from config file
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/go-coach-app/")
	viper.AddConfigPath("$HOME/.go-coach-app")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	viper.SetEnvPrefix("COACH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal the config into the Config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
