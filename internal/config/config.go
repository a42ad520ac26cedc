// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fortytwo/demeter/internal/cueutil"
	"github.com/fortytwo/demeter/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "demeter"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes every environment override, e.g. DEMETER_MODULES.
	EnvPrefix = "DEMETER"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the demeter configuration directory: %APPDATA% on
// Windows, ~/Library/Application Support on macOS and $XDG_CONFIG_HOME
// (defaulting to ~/.config) elsewhere.
//
//nolint:revive // ConfigDir reads better than Dir at call sites
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, AppName), nil
}

// newViper returns a viper instance carrying defaults and environment binding.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("modules", defaults.Modules)
	v.SetDefault("catalog_file", string(defaults.CatalogFile))
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("log.level", string(defaults.Log.Level))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadWithOptions loads defaults, then the first config file found, then
// environment overrides. It returns the path of the file used, or "" when
// running on defaults.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	path, err := locate(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", loadError(path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(sourceName(path)).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check DEMETER_* environment variables and the config file").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, path, nil
}

// locate picks the config file to read. An explicit ConfigFilePath must
// exist; the directory and working-directory candidates are optional.
func locate(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'demeter config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		cfgDir = dir
	}

	for _, candidate := range []string{
		filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt),
		ConfigFileName + "." + ConfigFileExt,
	} {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the values match the configuration schema").
		Wrap(err).
		BuildError()
}

func sourceName(path string) string {
	if path == "" {
		return "defaults"
	}
	return path
}

// loadCUEIntoViper validates the file at path against #Config and merges it
// into v. Fields are optional, so the value is validated non-concretely and
// decoded to a map for viper rather than through cueutil.ParseAndDecode.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	unified := schemaValue.LookupPath(cue.ParsePath("#Config")).Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DefaultConfigPath returns the path CreateDefaultConfig and Save write to.
func DefaultConfigPath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// CreateDefaultConfig writes a default config file unless one exists. It
// reports whether a file was written.
func CreateDefaultConfig() (string, bool, error) {
	cfgPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}
	if err := writeCUE(cfgPath, DefaultConfig()); err != nil {
		return "", false, err
	}
	return cfgPath, true, nil
}

// Save writes cfg to the default config path, replacing any existing file.
func Save(cfg *Config) error {
	cfgPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return writeCUE(cfgPath, cfg)
}

func writeCUE(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateCUE renders cfg as a config.cue document.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// demeter configuration\n\n")

	if cfg.Modules != "" {
		fmt.Fprintf(&sb, "modules: %q\n", cfg.Modules)
	} else {
		sb.WriteString("// modules: \"productos,ventas\"\n")
	}
	if cfg.CatalogFile != "" {
		fmt.Fprintf(&sb, "catalog_file: %q\n", cfg.CatalogFile)
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	sb.WriteString("}\n")

	return sb.String()
}
