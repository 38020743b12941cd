package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads an explicit config file instead
// of searching <root>/.classdoc. A missing explicit file is an error.
func NewFileLoader(configFile string) Loader {
	return &loader{
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (CLASSDOC_*)
// 2. Config file (.classdoc/config.yml or .classdoc/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, DirName))
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("CLASSDOC")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., CLASSDOC_OUTPUT_FORMAT)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Source configuration
	v.BindEnv("source.extensions")
	v.BindEnv("source.exclude_dirs")

	// Output configuration
	v.BindEnv("output.path")
	v.BindEnv("output.format")
	v.BindEnv("output.title")
	v.BindEnv("output.start_index")

	// Extraction configuration
	v.BindEnv("extraction.global_namespace")
	v.BindEnv("extraction.on_parse_error")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("source.extensions", defaults.Source.Extensions)
	v.SetDefault("source.exclude_dirs", defaults.Source.ExcludeDirs)

	v.SetDefault("output.path", defaults.Output.Path)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.title", defaults.Output.Title)
	v.SetDefault("output.start_index", defaults.Output.StartIndex)

	v.SetDefault("extraction.global_namespace", defaults.Extraction.GlobalNamespace)
	v.SetDefault("extraction.on_parse_error", defaults.Extraction.OnParseError)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
