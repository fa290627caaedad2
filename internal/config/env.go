package config

import (
	"os"

	"github.com/nibzard/nebula/internal/utils"
)

// loadFromEnv overrides config from NEBULA_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	mark := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("NEBULA_FILE"); v != "" {
		cfg.TaskFile = v
		mark("task_file")
	}
	if v := os.Getenv("NEBULA_LOAD_ON_START"); v != "" {
		cfg.LoadOnStart = utils.BoolFromString(v)
		mark("load_on_start")
	}
	if v := os.Getenv("NEBULA_CONFIRM_REMOVE"); v != "" {
		cfg.ConfirmRemove = utils.BoolFromString(v)
		mark("confirm_remove")
	}
	// NO_COLOR is honored as well as the nebula-specific switch.
	if v := os.Getenv("NEBULA_NO_COLOR"); v != "" {
		cfg.Color = !utils.BoolFromString(v)
		mark("color")
	} else if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Color = false
		mark("color")
	}

	// Logging configuration
	if v := os.Getenv("NEBULA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		mark("log_level")
	}
	if v := os.Getenv("NEBULA_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		mark("log_format")
	}
	if v := os.Getenv("NEBULA_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = utils.BoolFromString(v)
		mark("log_timestamps")
	}
}
