package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	// Ledger selects the backing store: a spreadsheet proxy when
	// spreadsheet_id is set, otherwise Postgres, Redis, or in-memory,
	// whichever is configured and reachable first.
	Ledger struct {
		ProxyURL      string `mapstructure:"proxy_url"`
		SpreadsheetID string `mapstructure:"spreadsheet_id"`
	} `mapstructure:"ledger"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Tasks struct {
		// CompletionStageGate requires the submitting form to be on the
		// finished stage before a task may be completed.
		CompletionStageGate bool `mapstructure:"completion_stage_gate"`
	} `mapstructure:"tasks"`

	Advisory struct {
		GeminiAPIKey string `mapstructure:"gemini_api_key"`
	} `mapstructure:"advisory"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("ledger.proxy_url", "")
	v.SetDefault("ledger.spreadsheet_id", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "parts_db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("tasks.completion_stage_gate", true)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override ledger settings from environment
	if proxy := os.Getenv("LEDGER_PROXY_URL"); proxy != "" {
		cfg.Ledger.ProxyURL = proxy
	}
	if id := os.Getenv("SPREADSHEET_ID"); id != "" {
		cfg.Ledger.SpreadsheetID = id
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Override Redis settings from environment
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	// Advisory key comes from the environment only; it never belongs
	// in a config file that could be committed.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Advisory.GeminiAPIKey = key
	}

	return &cfg
}
