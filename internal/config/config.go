// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Docker  DockerConfig
	Broker  BrokerConfig
	Store   StoreConfig
	Logging LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8084"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// DockerConfig holds Docker daemon configuration. An empty host falls
// back to the standard DOCKER_HOST resolution of the SDK.
type DockerConfig struct {
	Host string `envconfig:"DOCKER_API_HOST" default:""`
}

// BrokerConfig holds Kafka broker configuration. A zero WriteTimeout
// keeps the driver default and lets publishes wait for acknowledgment.
type BrokerConfig struct {
	Address      string        `envconfig:"BROKER_ADDR" default:"localhost:9092"`
	Topic        string        `envconfig:"BROKER_TOPIC" default:"logs_topic"`
	WriteTimeout time.Duration `envconfig:"BROKER_WRITE_TIMEOUT" default:"0s"`
}

// StoreConfig holds ClickHouse configuration.
type StoreConfig struct {
	DSN      string `envconfig:"STORE_DSN" default:"clickhouse://localhost:9000/default"`
	Table    string `envconfig:"STORE_TABLE" default:"logs"`
	MaxConns int    `envconfig:"STORE_MAX_CONNS" default:"5"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8084",
			Host: "0.0.0.0",
		},
		Broker: BrokerConfig{
			Address: "localhost:9092",
			Topic:   "logs_topic",
		},
		Store: StoreConfig{
			DSN:      "clickhouse://localhost:9000/default",
			Table:    "logs",
			MaxConns: 5,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
