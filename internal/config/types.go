// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidCatalogFilePath is returned when catalog_file is whitespace-only.
	ErrInvalidCatalogFilePath = errors.New("invalid catalog file path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level of diagnostics written to stderr.
	LogLevel string

	InvalidLogLevelError struct {
		Value LogLevel
	}

	// CatalogFilePath points at a CUE module catalog. The zero value selects
	// the built-in catalog.
	CatalogFilePath string

	InvalidCatalogFilePathError struct {
		Value CatalogFilePath
	}

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Modules is the demeter.modules property. Empty means "all".
		Modules string `json:"modules" mapstructure:"modules"`
		// CatalogFile replaces the built-in catalog when set.
		CatalogFile CatalogFilePath `json:"catalog_file" mapstructure:"catalog_file"`
		UI          UIConfig        `json:"ui" mapstructure:"ui"`
		Log         LogConfig       `json:"log" mapstructure:"log"`
	}

	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose forces debug logging and prints error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}
)

// DefaultConfig returns the configuration used when no file or
// environment override is present.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
	}
}

func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the known schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the known levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level maps l onto a charmbracelet/log level. Unknown values map to info.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

func (p CatalogFilePath) String() string { return string(p) }

// IsValid accepts the zero value; any other value must not be blank.
func (p CatalogFilePath) IsValid() (bool, []error) {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidCatalogFilePathError{Value: p}}
	}
	return true, nil
}

func (e *InvalidCatalogFilePathError) Error() string {
	return fmt.Sprintf("invalid catalog file path %q: must not be blank", e.Value)
}

func (e *InvalidCatalogFilePathError) Unwrap() error { return ErrInvalidCatalogFilePath }

// IsValid validates every typed field of the configuration.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.CatalogFile.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig followed by the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
