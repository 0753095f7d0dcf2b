package config

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetViper(t)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SEED_DATA", "")
	t.Setenv("REPORT_SCHEDULE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("LIBRARY_EVENTS_EXCHANGE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, "library_events", cfg.EventsExchange)
	assert.Equal(t, "@every 1h", cfg.ReportSchedule)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoadConfig_FallsBackToPlatformPort(t *testing.T) {
	resetViper(t)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PORT", "8088")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8088", cfg.ServerPort)
}

func TestLoadConfig_ServerPortWinsOverPort(t *testing.T) {
	resetViper(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("PORT", "8088")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.ServerPort)
}

func TestLoadConfig_ReadsOverrides(t *testing.T) {
	resetViper(t)
	t.Setenv("SEED_DATA", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REPORT_SCHEDULE", "off")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	assert.Equal(t, "off", cfg.ReportSchedule)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_RejectsUnknownLogLevel(t *testing.T) {
	resetViper(t)
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "", want: slog.LevelInfo},
		{input: "INFO", want: slog.LevelInfo},
		{input: " warn ", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
