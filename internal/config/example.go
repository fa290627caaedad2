package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Nebula configuration file
# Values can be overridden by environment variables or CLI flags

# Task file (relative to the working directory, supports ~ expansion)
task_file = "tasks.json"

# Load the task file when the interactive menu starts
load_on_start = false

# Ask before removing a task
confirm_remove = true

# Color status cells in tables
color = true

# Logging: debug, info, warn, error
log_level = "warn"

# Log format: text, logfmt, json
log_format = "text"

# Include timestamps in log lines
log_timestamps = false
`
}
