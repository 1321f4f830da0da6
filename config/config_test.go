package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	for _, key := range []string{
		"AGENT", "PORT", "TWILIO_PORT", "SERVER_TYPE", "REDIS_URL",
		"MAX_SESSIONS", "SESSION_TIMEOUT", "VOICE_NAME", "ALLOWED_ORIGINS", "MAX_BUFFER_SIZE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "saudia", cfg.AgentName)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 8081, cfg.TwilioPort)
	assert.Equal(t, "websocket", cfg.ServerType)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, 100, cfg.MaxSessions)
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, "Zephyr", cfg.VoiceName)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*1024*1024, cfg.MaxBufferSize)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("AGENT", "LUFTHANSA")
	t.Setenv("PORT", "9000")
	t.Setenv("SERVER_TYPE", "both")
	t.Setenv("TWILIO_PORT", "9001")
	t.Setenv("VOICE_NAME", "Puck")
	t.Setenv("SESSION_TIMEOUT", "5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "lufthansa", cfg.AgentName, "agent name is normalized to lower case")
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "both", cfg.ServerType)
	assert.Equal(t, 9001, cfg.TwilioPort)
	assert.Equal(t, "Puck", cfg.VoiceName)
	assert.Equal(t, 5*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "PORT", "abc"},
		{"bad max sessions", "MAX_SESSIONS", "many"},
		{"bad server type", "SERVER_TYPE", "grpc"},
		{"bad buffer size", "MAX_BUFFER_SIZE", "5MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "test-key")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}
