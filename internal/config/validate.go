package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidStartIndex indicates a non-positive starting section number
	ErrInvalidStartIndex = errors.New("invalid start index")

	// ErrEmptyOutputPath indicates a missing output path
	ErrEmptyOutputPath = errors.New("empty output path")

	// ErrInvalidParsePolicy indicates an unknown parse error policy
	ErrInvalidParsePolicy = errors.New("invalid parse error policy")

	// ErrEmptyNamespace indicates a missing global namespace name
	ErrEmptyNamespace = errors.New("empty global namespace")

	// ErrEmptyExtensions indicates that no source extensions are configured
	ErrEmptyExtensions = errors.New("empty source extensions")
)

var validFormats = map[string]bool{
	"docx":     true,
	"markdown": true,
	"md":       true,
}

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateSource(&cfg.Source); err != nil {
		errs = append(errs, err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if err := validateExtraction(&cfg.Extraction); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateSource(cfg *SourceConfig) error {
	for _, ext := range cfg.Extensions {
		if strings.TrimSpace(ext) != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: at least one extension required", ErrEmptyExtensions)
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	if !validFormats[strings.ToLower(cfg.Format)] {
		errs = append(errs, fmt.Errorf("%w: must be 'docx' or 'markdown', got '%s'", ErrInvalidFormat, cfg.Format))
	}

	if strings.TrimSpace(cfg.Path) == "" {
		errs = append(errs, fmt.Errorf("%w: output path is required", ErrEmptyOutputPath))
	}

	if cfg.StartIndex < 1 {
		errs = append(errs, fmt.Errorf("%w: start_index must be positive, got %d", ErrInvalidStartIndex, cfg.StartIndex))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateExtraction(cfg *ExtractionConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.GlobalNamespace) == "" {
		errs = append(errs, fmt.Errorf("%w: global_namespace is required", ErrEmptyNamespace))
	}

	policy := strings.ToLower(cfg.OnParseError)
	if policy != "abort" && policy != "skip" {
		errs = append(errs, fmt.Errorf("%w: on_parse_error must be 'abort' or 'skip', got '%s'", ErrInvalidParsePolicy, cfg.OnParseError))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear
// formatting. Every input stays reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	format := "validation failed:" + strings.Repeat("\n  - %w", len(errs))
	args := make([]any, len(errs))
	for i, err := range errs {
		args[i] = err
	}
	return fmt.Errorf(format, args...)
}
