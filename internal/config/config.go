// Package config provides configuration loading for classdoc.
//
// Configuration is read per source root from .classdoc/config.yml and can be
// overridden with CLASSDOC_* environment variables. Command-line flags are
// applied on top by the cli package.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Command-line flags
//  2. Environment variables (CLASSDOC_*)
//  3. Config file (.classdoc/config.yml or an explicit --config path)
//  4. Built-in defaults
//
// Environment Variable Convention:
//   - Prefix: CLASSDOC_
//   - Nested fields: Use underscores (CLASSDOC_OUTPUT_START_INDEX)
//   - Automatic mapping via Viper's SetEnvKeyReplacer
package config

// DirName is the per-root configuration directory.
const DirName = ".classdoc"

// Config represents the complete classdoc configuration.
type Config struct {
	Source     SourceConfig     `yaml:"source" mapstructure:"source"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
}

// SourceConfig defines which files are eligible for extraction.
type SourceConfig struct {
	Extensions  []string `yaml:"extensions" mapstructure:"extensions"`     // e.g. [".cs"]
	ExcludeDirs []string `yaml:"exclude_dirs" mapstructure:"exclude_dirs"` // directory names pruned anywhere in the tree
}

// OutputConfig defines the generated document.
type OutputConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`               // relative to the root unless absolute
	Format     string `yaml:"format" mapstructure:"format"`           // "docx" or "markdown"
	Title      string `yaml:"title" mapstructure:"title"`             // level-1 heading text
	StartIndex int    `yaml:"start_index" mapstructure:"start_index"` // first section number
}

// ExtractionConfig defines how declarations are turned into the model.
type ExtractionConfig struct {
	GlobalNamespace string `yaml:"global_namespace" mapstructure:"global_namespace"` // bucket for types outside any namespace
	OnParseError    string `yaml:"on_parse_error" mapstructure:"on_parse_error"`     // "abort" or "skip"
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Extensions:  []string{".cs"},
			ExcludeDirs: []string{"bin", "obj"},
		},
		Output: OutputConfig{
			Path:       "ClassSpecifications.docx",
			Format:     "docx",
			Title:      "Class Specifications",
			StartIndex: 1,
		},
		Extraction: ExtractionConfig{
			GlobalNamespace: "Global",
			OnParseError:    "abort",
		},
	}
}
