package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Files lists the config files that were read, lowest priority first.
	Files []string

	// Undecoded lists keys found in config files that nebula does not know.
	Undecoded []string
}

// Default values.
const (
	DefaultTaskFile      = "tasks.json"
	DefaultLoadOnStart   = false
	DefaultConfirmRemove = true
	DefaultColor         = true
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for nebula.
type Config struct {
	// Task file, relative paths resolve against WorkDir
	TaskFile string `toml:"task_file"`

	// Load the task file when an interactive session starts
	LoadOnStart bool `toml:"load_on_start"`

	// Ask before removing a task
	ConfirmRemove bool `toml:"confirm_remove"`

	// Color status cells in tables
	Color bool `toml:"color"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"load_on_start",
		"confirm_remove",
		"color",
		"log_level",
		"log_format",
		"log_timestamps",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.LoadOnStart = DefaultLoadOnStart
	cfg.ConfirmRemove = DefaultConfirmRemove
	cfg.Color = DefaultColor
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
}
