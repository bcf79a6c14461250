// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the largest document accepted unless overridden.
const DefaultMaxFileSize int64 = 5 << 20

type (
	// Option configures parsing.
	Option func(*options)

	options struct {
		filename    string
		maxFileSize int64
		concrete    bool
	}
)

func defaultOptions() options {
	return options{maxFileSize: DefaultMaxFileSize}
}

// WithFilename sets the file name used in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *options) { o.maxFileSize = size }
}

// WithConcrete requires every value of the unified document to be concrete.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}

func (o options) displayName() string {
	if o.filename == "" {
		return "<input>"
	}
	return o.filename
}
