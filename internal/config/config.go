/**
 * @description
 * This file handles the configuration management for the library-service.
 * It uses the Viper library to read settings from environment variables or a
 * local .env file.
 *
 * @dependencies
 * - github.com/spf13/viper: For configuration management.
 */
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort         string `mapstructure:"SERVER_PORT"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	SeedData           bool   `mapstructure:"SEED_DATA"`
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RabbitMQURL        string `mapstructure:"RABBITMQ_URL"`
	EventsExchange     string `mapstructure:"LIBRARY_EVENTS_EXCHANGE"`
	ReportSchedule     string `mapstructure:"REPORT_SCHEDULE"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SEED_DATA", true)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("LIBRARY_EVENTS_EXCHANGE", "library_events")
	viper.SetDefault("REPORT_SCHEDULE", "@every 1h")

	// SERVER_PORT wins over the platform-provided PORT when both are set.
	_ = viper.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT")
	_ = viper.BindEnv("LOG_LEVEL")
	_ = viper.BindEnv("SEED_DATA")
	_ = viper.BindEnv("CORS_ALLOWED_ORIGINS")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("LIBRARY_EVENTS_EXCHANGE")
	_ = viper.BindEnv("REPORT_SCHEDULE")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.ServerPort = strings.TrimSpace(config.ServerPort)
	if config.ServerPort == "" {
		return nil, fmt.Errorf("SERVER_PORT must not be empty")
	}
	if _, err := ParseLogLevel(config.LogLevel); err != nil {
		return nil, err
	}

	return &config, nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// ParseLogLevel maps LOG_LEVEL onto a slog level.
func ParseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", raw)
	}
}
