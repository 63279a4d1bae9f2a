package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/fuzzscan/config"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

// setup loads the configuration and installs the default logger.
// The --log-level flag overrides the configured level.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg

	levelStr := cfg.Logging.Level
	if c.IsSet("log-level") || levelStr == "" {
		levelStr = c.String("log-level")
	}
	return setupLogger(levelStr)
}

func setupLogger(levelStr string) error {
	levelStr = strings.ToLower(levelStr)

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// loadedConfig returns the configuration read by setup.
func loadedConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	cfg := config.Default()
	return &cfg
}
