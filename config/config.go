package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	LogLevel        slog.Level
	StaticDir       string
	MaxMessageSize  int64
	SendBuffer      int
	MDNSEnabled     bool
	MDNSInstance    string
	ShutdownTimeout time.Duration
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:            getenv("PORT", "3000"),
		LogLevel:        parseLevel(os.Getenv("LOG_LEVEL")),
		StaticDir:       os.Getenv("STATIC_DIR"),
		MDNSInstance:    os.Getenv("MDNS_INSTANCE"),
		MaxMessageSize:  8 << 20,
		SendBuffer:      256,
		ShutdownTimeout: 10 * time.Second,
	}

	if v := os.Getenv("WS_MAX_MESSAGE_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("WS_MAX_MESSAGE_BYTES: invalid value %q", v)
		}
		cfg.MaxMessageSize = n
	}
	if v := os.Getenv("WS_SEND_BUFFER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("WS_SEND_BUFFER: invalid value %q", v)
		}
		cfg.SendBuffer = n
	}
	if v := os.Getenv("MDNS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("MDNS_ENABLED: %w", err)
		}
		cfg.MDNSEnabled = b
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func (c Config) PortNumber() (int, error) {
	n, err := strconv.Atoi(c.Port)
	if err != nil {
		return 0, fmt.Errorf("PORT: invalid value %q", c.Port)
	}
	return n, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
