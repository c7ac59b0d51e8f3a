package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "mock", cfg.DataSource)
	assert.Equal(t, "log", cfg.Sink)
	assert.Equal(t, int64(42), cfg.MockSeed)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsDev())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SINK", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("MOCK_ROWS", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBroker)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 15, cfg.MockRows)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env: "development", Secret: "dev_secret", DBDriver: "sqlite",
			DatabaseDSN: "file::memory:", DataSource: "mock", Sink: "log",
			SessionTTL: time.Minute,
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }},
		{"empty dsn", func(c *Config) { c.DatabaseDSN = " " }},
		{"unknown source", func(c *Config) { c.DataSource = "http" }},
		{"unknown sink", func(c *Config) { c.Sink = "smtp" }},
		{"kafka without brokers", func(c *Config) { c.Sink = "kafka"; c.KafkaTopic = "t" }},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }},
		{"dev secret in production", func(c *Config) { c.Env = "production" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
