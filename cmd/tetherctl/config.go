package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type config struct {
	URL               string `yaml:"url"`
	LogLevel          string `yaml:"logLevel"`
	LogFormat         string `yaml:"logFormat"`
	EchoInterval      int    `yaml:"echoInterval"`      // milliseconds
	ConnectTimeout    int    `yaml:"connectTimeout"`    // milliseconds
	ReconnectDelay    int    `yaml:"reconnectDelay"`    // milliseconds
	HeartbeatInterval int    `yaml:"heartbeatInterval"` // milliseconds
}

func defaultConfig() *config {
	return &config{
		LogLevel:          "info",
		LogFormat:         "text",
		EchoInterval:      5000,
		ConnectTimeout:    10000,
		ReconnectDelay:    2000,
		HeartbeatInterval: 30000,
	}
}

func readConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}
	return nil
}

func (c *config) level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *config) heartbeat() time.Duration {
	return time.Duration(c.HeartbeatInterval) * time.Millisecond
}

func (c *config) reconnect() time.Duration {
	return time.Duration(c.ReconnectDelay) * time.Millisecond
}

func (c *config) timeout() time.Duration {
	return time.Duration(c.ConnectTimeout) * time.Millisecond
}

func (c *config) echoEvery() time.Duration {
	return time.Duration(c.EchoInterval) * time.Millisecond
}
