package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string        `mapstructure:"PORT"`
	DatabaseDriver                string        `mapstructure:"DATABASE_DRIVER"`
	DatabasePath                  string        `mapstructure:"DATABASE_PATH"`
	DatabaseURL                   string        `mapstructure:"DATABASE_URL"`
	DBTimeout                     time.Duration `mapstructure:"DB_TIMEOUT"`
	CardCacheTTL                  time.Duration `mapstructure:"CARD_CACHE_TTL"`
	LogLevel                      string        `mapstructure:"LOG_LEVEL"`
	LogFormat                     string        `mapstructure:"LOG_FORMAT"`
	DiscordWebhookURL             string        `mapstructure:"DISCORD_WEBHOOK_URL"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	RedisURL                      string        `mapstructure:"REDIS_URL"`
	RedisChannel                  string        `mapstructure:"REDIS_CHANNEL"`
	NotifyTimeout                 time.Duration `mapstructure:"NOTIFY_TIMEOUT"`
	MetricsAddr                   string        `mapstructure:"METRICS_ADDR"`
	TracingExporter               string        `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint                  string        `mapstructure:"OTLP_ENDPOINT"`
	ExposeDocs                    bool          `mapstructure:"EXPOSE_DOCS"`
	ShutdownTimeout               time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_PATH", "registrations.db")
	viper.SetDefault("DB_TIMEOUT", "5s")
	viper.SetDefault("CARD_CACHE_TTL", "10m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("REDIS_CHANNEL", "registrations")
	viper.SetDefault("NOTIFY_TIMEOUT", "10s")
	viper.SetDefault("METRICS_ADDR", ":9090")
	viper.SetDefault("TRACING_EXPORTER", "none")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4317")
	viper.SetDefault("EXPOSE_DOCS", false)
	viper.SetDefault("SHUTDOWN_TIMEOUT", "15s")

	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("DISCORD_WEBHOOK_URL")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	viper.BindEnv("REDIS_URL")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
