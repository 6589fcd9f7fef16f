package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8084", cfg.Server.Port)
	assert.Equal(t, "logs_topic", cfg.Broker.Topic)
	assert.Equal(t, "localhost:9092", cfg.Broker.Address)
	assert.Equal(t, time.Duration(0), cfg.Broker.WriteTimeout)
	assert.Equal(t, "logs", cfg.Store.Table)
	assert.Equal(t, 5, cfg.Store.MaxConns)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BROKER_ADDR", "redpanda:18081")
	t.Setenv("BROKER_TOPIC", "app_logs")
	t.Setenv("BROKER_WRITE_TIMEOUT", "5s")
	t.Setenv("STORE_DSN", "clickhouse://clickhouse:9000/logs")
	t.Setenv("STORE_TABLE", "container_logs")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redpanda:18081", cfg.Broker.Address)
	assert.Equal(t, "app_logs", cfg.Broker.Topic)
	assert.Equal(t, 5*time.Second, cfg.Broker.WriteTimeout)
	assert.Equal(t, "clickhouse://clickhouse:9000/logs", cfg.Store.DSN)
	assert.Equal(t, "container_logs", cfg.Store.Table)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestDefaultMatchesEnvDefaults(t *testing.T) {
	loaded, err := Load()
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Broker.Topic, loaded.Broker.Topic)
	assert.Equal(t, def.Store.Table, loaded.Store.Table)
	assert.Equal(t, def.Server.Port, loaded.Server.Port)
}
