package cmd

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"pizzadelivery/internal/adapters/out/postgres"
	"pizzadelivery/internal/jobs"
)

type Config struct {
	TCPHost          string
	TCPPort          string
	UDPBroadcastHost string
	UDPPort          string
	HTTPPort         string
	LogLevel         string
	PrepareDelay     jobs.DelayRange
	ReadyDelay       jobs.DelayRange
	DB               postgres.Config
}

// LoadConfig reads the configuration from the environment. Unset variables
// take their defaults; malformed durations are an error.
func LoadConfig() (Config, error) {
	prepare, err := delayRange("PREPARE_DELAY", 3*time.Second, 5*time.Second)
	if err != nil {
		return Config{}, err
	}

	ready, err := delayRange("READY_DELAY", 8*time.Second, 12*time.Second)
	if err != nil {
		return Config{}, err
	}

	return Config{
		TCPHost:          env("TCP_HOST", "127.0.0.1"),
		TCPPort:          env("TCP_PORT", "9050"),
		UDPBroadcastHost: env("UDP_BROADCAST_HOST", "255.255.255.255"),
		UDPPort:          env("UDP_PORT", "9051"),
		HTTPPort:         envAllowEmpty("HTTP_PORT", "8080"),
		LogLevel:         env("LOG_LEVEL", "info"),
		PrepareDelay:     prepare,
		ReadyDelay:       ready,
		DB: postgres.Config{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
	}, nil
}

func (c Config) TCPAddress() string {
	return net.JoinHostPort(c.TCPHost, c.TCPPort)
}

func (c Config) UDPTarget() string {
	return net.JoinHostPort(c.UDPBroadcastHost, c.UDPPort)
}

// HTTPAddress is empty when the admin API is disabled.
func (c Config) HTTPAddress() string {
	if c.HTTPPort == "" {
		return ""
	}
	return net.JoinHostPort("0.0.0.0", c.HTTPPort)
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// envAllowEmpty returns fallback only when key is unset, so KEY= disables.
func envAllowEmpty(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(v)
}

func delayRange(prefix string, minDefault, maxDefault time.Duration) (jobs.DelayRange, error) {
	minDelay, err := duration(prefix+"_MIN", minDefault)
	if err != nil {
		return jobs.DelayRange{}, err
	}

	maxDelay, err := duration(prefix+"_MAX", maxDefault)
	if err != nil {
		return jobs.DelayRange{}, err
	}

	r := jobs.DelayRange{Min: minDelay, Max: maxDelay}
	if err = r.Validate(); err != nil {
		return jobs.DelayRange{}, fmt.Errorf("%s: %w", prefix, err)
	}
	return r, nil
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
