// Package config loads duckbridge configuration from file, environment
// variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "duckbridge.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "duckbridge.yml"

const envPrefix = "DUCKBRIDGE_"

// Default configuration values.
const (
	DefaultListen = ":8098"
	DefaultOutput = "table"
)

// Config holds all runtime settings.
type Config struct {
	// Database is the DuckDB file path; empty means in-memory.
	Database string `koanf:"database"`
	// Listen is the HTTP listen address for serve mode.
	Listen string `koanf:"listen"`
	// History is the path to the operation history store; empty
	// disables recording.
	History string `koanf:"history"`
	// Output is the default rendering format: table, json, csv, md.
	Output  string `koanf:"output"`
	Verbose bool   `koanf:"verbose"`
}

// Load builds the configuration with the usual precedence:
// flags > env vars > config file > defaults. A nil flag set skips the
// flag layer. When cfgFile is empty, duckbridge.yaml/.yml in the
// working directory is used if present.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"listen": DefaultListen,
		"output": DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		path = findConfigFile(".")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// findConfigFile finds the config file in the given directory.
// Returns empty string if not found.
func findConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}

	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}

	return ""
}
