// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"github.com/spf13/afero"
)

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ProjectDir is where the rc file is looked up and relative paths are
		// anchored. Defaults to the working directory.
		ProjectDir string
		// ConfigFilePath forces loading from a specific rc file when set.
		ConfigFilePath string
		// Require turns a missing rc file into an error instead of defaults.
		Require bool
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	// ProviderOption configures a provider.
	ProviderOption func(*fileProvider)

	fileProvider struct {
		fs afero.Fs
	}
)

// WithFs makes the provider read rc files from fs.
func WithFs(fs afero.Fs) ProviderOption {
	return func(p *fileProvider) { p.fs = fs }
}

// NewProvider creates a configuration provider reading from the OS
// filesystem unless WithFs is given.
func NewProvider(opts ...ProviderOption) Provider {
	p := &fileProvider{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	return loadWithOptions(ctx, p.fs, opts)
}
