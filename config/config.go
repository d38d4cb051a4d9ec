package config

import (
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"time"
)

var ErrMissingAPIKey = errors.New("OPENWEATHERMAP_API_KEY is required")

type Config struct {
	ServiceName   string
	ServerAddress string

	DBName     string
	DBPassword string
	DBUser     string
	DBPort     string
	DBHost     string

	Env               string
	LogLevel          string
	HTTPTimeout       int32
	HTTPClientTimeout time.Duration

	OpenWeatherMapAPIKey  string
	OpenWeatherMapBaseURL string

	SessionIdleTTL         time.Duration
	SessionCleanupInterval time.Duration

	HistoryRetention         time.Duration
	HistoryRetentionSchedule string

	ZipkinEndpoint string
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "weather-fetcher")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3000")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("HTTP_TIMEOUT", 15)
	v.SetDefault("HTTP_CLIENT_TIMEOUT", 10*time.Second)
	v.SetDefault("OPENWEATHERMAP_BASE_URL", "https://api.openweathermap.org")
	v.SetDefault("SESSION_IDLE_TTL", 30*time.Minute)
	v.SetDefault("SESSION_CLEANUP_INTERVAL", time.Minute)
	v.SetDefault("HISTORY_RETENTION", 30*24*time.Hour)
	v.SetDefault("HISTORY_RETENTION_SCHEDULE", "@daily")

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:              v.GetString("SERVICE_NAME"),
		ServerAddress:            v.GetString("SERVER_ADDRESS"),
		DBName:                   v.GetString("DATABASE_NAME"),
		DBPassword:               v.GetString("DATABASE_PASSWORD"),
		DBUser:                   v.GetString("DATABASE_USER"),
		DBPort:                   v.GetString("DATABASE_PORT"),
		DBHost:                   v.GetString("DATABASE_HOST"),
		Env:                      v.GetString("ENV"),
		LogLevel:                 v.GetString("LOG_LEVEL"),
		HTTPTimeout:              v.GetInt32("HTTP_TIMEOUT"),
		HTTPClientTimeout:        v.GetDuration("HTTP_CLIENT_TIMEOUT"),
		OpenWeatherMapAPIKey:     v.GetString("OPENWEATHERMAP_API_KEY"),
		OpenWeatherMapBaseURL:    v.GetString("OPENWEATHERMAP_BASE_URL"),
		SessionIdleTTL:           v.GetDuration("SESSION_IDLE_TTL"),
		SessionCleanupInterval:   v.GetDuration("SESSION_CLEANUP_INTERVAL"),
		HistoryRetention:         v.GetDuration("HISTORY_RETENTION"),
		HistoryRetentionSchedule: v.GetString("HISTORY_RETENTION_SCHEDULE"),
		ZipkinEndpoint:           v.GetString("ZIPKIN_ENDPOINT"),
	}

	if config.OpenWeatherMapAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return config, nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// HistoryEnabled reports whether a database is configured for the fetch history.
func (c *Config) HistoryEnabled() bool {
	return c.DBHost != ""
}
