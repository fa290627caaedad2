package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.nebula/nebula.toml or OS-specific config dir)
// 3. Project config file (nebula.toml or .nebula.toml in current directory)
// 4. Environment variables
// 5. CLI flags
//
// Global flags are registered on fs and parsed from args; fs.Args() holds the
// rest once Load returns.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := load(fs, args, nil)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}
	return load(fs, args, sources)
}

// load is the shared implementation. If sources is non-nil, it tracks the
// source of each value.
func load(fs *flag.FlagSet, args []string, sources map[string]ConfigSource) (*ConfigWithSources, error) {
	cfg := &Config{}
	cws := &ConfigWithSources{Config: cfg, Sources: sources}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cws, path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cws, path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg, sources)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadConfigFile decodes a TOML file over cfg and records which keys it set.
func loadConfigFile(cws *ConfigWithSources, path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cws.Config)
	if err != nil {
		return err
	}
	cws.Files = append(cws.Files, path)

	if cws.Sources != nil {
		for _, field := range configFields() {
			if md.IsDefined(field) {
				cws.Sources[field] = source
			}
		}
	}
	for _, key := range md.Undecoded() {
		cws.Undecoded = append(cws.Undecoded, key.String())
	}
	sort.Strings(cws.Undecoded)
	return nil
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	switch cfg.LogFormat {
	case "text", "logfmt", "json":
	default:
		return fmt.Errorf("invalid log_format %q, must be one of: text, logfmt, json", cfg.LogFormat)
	}

	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.WorkDir = wd
	}

	if cfg.TaskFile == "" {
		cfg.TaskFile = DefaultTaskFile
	}
	cfg.TaskFile = expandPath(cfg.TaskFile)
	return nil
}

// TaskPath returns the absolute path of the task file.
func (c *Config) TaskPath() string {
	if filepath.IsAbs(c.TaskFile) {
		return c.TaskFile
	}
	return filepath.Join(c.WorkDir, c.TaskFile)
}
