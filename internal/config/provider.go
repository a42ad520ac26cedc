// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Loaded is a configuration together with the file it came from.
type Loaded struct {
	Config *Config
	// Path is the config file read, or "" when only defaults and
	// environment overrides apply.
	Path string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Loaded, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider backed by viper and CUE files.
func NewProvider() Provider {
	return &fileProvider{}
}

func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Loaded, error) {
	cfg, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, Path: path}, nil
}

// StaticProvider always returns the same configuration. Tests use it to
// bypass the filesystem.
type StaticProvider struct {
	Loaded *Loaded
	Err    error
}

func (p StaticProvider) Load(ctx context.Context, _ LoadOptions) (*Loaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Loaded, nil
}
