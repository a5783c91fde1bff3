package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"campaign-insights/internal/config/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 5, cfg.Segment.Clusters)
	assert.Equal(t, int64(42), cfg.Segment.Seed)
	assert.Equal(t, configs.ProviderNone, cfg.Completion.Provider)
	assert.Equal(t, 30*time.Second, cfg.Completion.Timeout)
	assert.Equal(t, "llama3-8b-8192", cfg.Completion.GroqModel)
	assert.False(t, cfg.Completion.Enabled())
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.False(t, cfg.S3.Enabled)
	assert.Equal(t, configs.MailerSimulated, cfg.Mailer.Provider)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SEGMENT_CLUSTERS", "3")
	t.Setenv("COMPLETION_PROVIDER", "groq")
	t.Setenv("COMPLETION_GROQ_API_KEY", "k")
	t.Setenv("COMPLETION_TIMEOUT", "2s")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Segment.Clusters)
	assert.True(t, cfg.Completion.Enabled())
	assert.Equal(t, 2*time.Second, cfg.Completion.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("clusters", func(t *testing.T) {
		t.Setenv("SEGMENT_CLUSTERS", "1")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("provider", func(t *testing.T) {
		t.Setenv("COMPLETION_PROVIDER", "openai")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("ses without sender", func(t *testing.T) {
		t.Setenv("MAILER_PROVIDER", "ses")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("port", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "not-a-port")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLogger(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, configs.Logger{Level: "WARNING"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, configs.Logger{Level: "loud"}.SlogLevel())
	assert.Equal(t, "text", configs.Logger{Format: "xml"}.SlogFormat())

	var buf bytes.Buffer
	configs.Logger{Level: "debug", Format: "json"}.New(&buf).Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}
