// Package config reads the bot's settings from the environment, optionally
// seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/monodyle/tokyo-go/ipc"
	"github.com/monodyle/tokyo-go/model"
)

const (
	DefaultServerHost     = "192.168.0.199"
	DefaultServerScheme   = "wss"
	DefaultBotName        = "tokyo-go"
	DefaultReconnectDelay = 2 * time.Second
)

var ErrMissingKey = errors.New("BOT_KEY is not set")

type Config struct {
	Endpoint       ipc.Endpoint
	LogLevel       slog.Level
	DoctrineFile   string
	TickInterval   time.Duration
	ReconnectDelay time.Duration
}

// Load applies the given .env files (".env" when none are named; missing
// files are skipped) without overriding variables already set, then reads
// the environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv reads the settings from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Endpoint: ipc.Endpoint{
			Scheme: GetEnvDefault("SERVER_SCHEME", DefaultServerScheme),
			Host:   GetEnvDefault("SERVER_HOST", DefaultServerHost),
			Key:    os.Getenv("BOT_KEY"),
			Name:   GetEnvDefault("BOT_NAME", DefaultBotName),
		},
		DoctrineFile: os.Getenv("DOCTRINE_FILE"),
	}
	if cfg.Endpoint.Key == "" {
		return Config{}, ErrMissingKey
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(GetEnvDefault("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	var err error
	if cfg.TickInterval, err = durationEnv("TICK_INTERVAL", model.MinCommandInterval); err != nil {
		return Config{}, err
	}
	if cfg.TickInterval < model.MinCommandInterval {
		slog.Warn("TICK_INTERVAL below server limit, raising it", "requested", cfg.TickInterval, "limit", model.MinCommandInterval)
		cfg.TickInterval = model.MinCommandInterval
	}
	if cfg.ReconnectDelay, err = durationEnv("RECONNECT_DELAY", DefaultReconnectDelay); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func GetEnvDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := GetEnvDefault(key, "")
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
