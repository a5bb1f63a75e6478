package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values. It is loaded once in main and
// passed to the components that need it.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Notion reservation workspace.
	NotionAPIKey       string  `mapstructure:"NOTION_API_KEY"`
	NotionBaseURL      string  `mapstructure:"NOTION_BASE_URL"`
	MainDatabaseID     string  `mapstructure:"MAIN_DATABASE_ID"`
	ListingsDatabaseID string  `mapstructure:"LISTINGS_DATABASE_ID"`
	PersonDatabaseID   string  `mapstructure:"PERSON_DATABASE_ID"`
	CleaningDatabaseID string  `mapstructure:"CLEANING_DATABASE_ID"`
	CleaningAmount     float64 `mapstructure:"CLEANING_AMOUNT"`

	// MongoDB snapshot mirror.
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	SnapshotRetention int    `mapstructure:"SNAPSHOT_RETENTION"`

	// Redis configuration.
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB   int           `mapstructure:"REDIS_QUEUE_DB"`
	ReportCacheTTL time.Duration `mapstructure:"REPORT_CACHE_TTL"`

	// Telegram bot.
	TelegramAPIKey  string `mapstructure:"TELEGRAM_API_KEY"`
	WebhookURL      string `mapstructure:"WEBHOOK_URL"`
	DigestChatID    int64  `mapstructure:"DIGEST_CHAT_ID"`
	DigestCron      string `mapstructure:"DIGEST_CRON"`
	DisplayTimezone string `mapstructure:"DISPLAY_TIMEZONE"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("NOTION_API_KEY", "")
	v.SetDefault("NOTION_BASE_URL", "https://api.notion.com/v1")
	v.SetDefault("MAIN_DATABASE_ID", "")
	v.SetDefault("LISTINGS_DATABASE_ID", "")
	v.SetDefault("PERSON_DATABASE_ID", "")
	v.SetDefault("CLEANING_DATABASE_ID", "")
	v.SetDefault("CLEANING_AMOUNT", 750)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "vacancy")
	v.SetDefault("SNAPSHOT_RETENTION", 50)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("REPORT_CACHE_TTL", "5m")
	v.SetDefault("TELEGRAM_API_KEY", "")
	v.SetDefault("WEBHOOK_URL", "")
	v.SetDefault("DIGEST_CHAT_ID", 0)
	v.SetDefault("DIGEST_CRON", "0 8 * * *")
	v.SetDefault("DISPLAY_TIMEZONE", "Europe/Istanbul")
}

// LoadConfig reads config.yaml from "." or "./config" when present and
// overlays environment variables on top of the defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Validate reports the settings without which the service cannot answer
// availability queries.
func (c *Config) Validate() error {
	if c.NotionAPIKey == "" {
		return fmt.Errorf("NOTION_API_KEY is required")
	}
	if c.MainDatabaseID == "" {
		return fmt.Errorf("MAIN_DATABASE_ID is required")
	}
	if c.ListingsDatabaseID == "" {
		return fmt.Errorf("LISTINGS_DATABASE_ID is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TelegramEnabled reports whether the bot should be wired.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramAPIKey != ""
}

// Location returns the zone used to decide what "today" means for check-ins.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
