package config

import (
	"flag"
)

// flagFields maps global flag names to the config field they set.
var flagFields = map[string]string{
	"file":           "task_file",
	"load-on-start":  "load_on_start",
	"confirm-remove": "confirm_remove",
	"no-color":       "color",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
}

// parseFlags defines and parses global CLI flags.
// If sources is non-nil, explicitly set flags are recorded as SourceFlag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("nebula", flag.ContinueOnError)
	}

	var noColor bool
	fs.StringVar(&cfg.TaskFile, "file", cfg.TaskFile, "Path to task file")
	fs.BoolVar(&cfg.LoadOnStart, "load-on-start", cfg.LoadOnStart, "Load the task file when the menu starts")
	fs.BoolVar(&cfg.ConfirmRemove, "confirm-remove", cfg.ConfirmRemove, "Ask before removing a task")
	fs.BoolVar(&noColor, "no-color", !cfg.Color, "Disable colored output")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|logfmt|json)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log lines")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Color = !noColor

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
