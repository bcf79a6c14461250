// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/unistylus/unistylus/internal/variable"
	"github.com/unistylus/unistylus/pkg/cueutil"
)

const (
	// DefaultName is the project name used when the rc file sets none.
	DefaultName = "unistylus"
	// DefaultSrc is the default source directory.
	DefaultSrc DirPath = "src"
	// DefaultOut is the default soul output directory.
	DefaultOut DirPath = "dist"
	// DefaultWebOut is the default website output directory.
	DefaultWebOut DirPath = "docs"
	// DefaultWebTitle is the default website title.
	DefaultWebTitle = "Unistylus"
	// DefaultSassBinary is the Dart Sass executable looked up in PATH.
	DefaultSassBinary = "sass"

	// DefaultResetURL is downloaded when the source has no reset.scss.
	DefaultResetURL = "https://raw.githubusercontent.com/lamnhan/unistylus-material/main/src/reset.scss"
	// DefaultCoreURL is downloaded when the source has no core.scss.
	DefaultCoreURL = "https://raw.githubusercontent.com/lamnhan/unistylus-bootstrap/main/src/core.scss"

	// SkinsGroup holds the skin stylesheets of a project.
	SkinsGroup = "skins"
)

var (
	// ErrInvalidDirPath is the sentinel error wrapped by InvalidDirPathError.
	ErrInvalidDirPath = errors.New("invalid directory path")
	// ErrInvalidCopyEntry is the sentinel error wrapped by InvalidCopyEntryError.
	ErrInvalidCopyEntry = errors.New("invalid copy entry")
	// ErrInvalidGroupName is the sentinel error wrapped by InvalidGroupNameError.
	ErrInvalidGroupName = errors.New("invalid group name")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnsupportedFormat is returned for rc files of an unknown extension.
	ErrUnsupportedFormat = cueutil.ErrUnsupportedFormat

	groupNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

type (
	// DirPath is a directory path, relative to the project directory unless
	// absolute. A valid path is non-empty and not whitespace-only.
	DirPath string

	// InvalidDirPathError is returned when a DirPath is blank.
	InvalidDirPathError struct {
		Field string
		Value DirPath
	}

	// CopyEntry copies From (relative to src) to To (relative to out).
	// From may be a doublestar glob, in which case To is a directory.
	CopyEntry struct {
		From string `json:"from"`
		To   string `json:"to"`
	}

	// InvalidCopyEntryError is returned when a copy entry has a blank side.
	InvalidCopyEntryError struct {
		Entry CopyEntry
	}

	// InvalidGroupNameError is returned when a group name is not a plain
	// directory name or contains the "-" variant delimiter.
	InvalidGroupNameError struct {
		Value string
	}

	// InvalidConfigError collects every field-level error of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// RemoteConfig holds the fallback download URLs.
	RemoteConfig struct {
		Reset string `json:"reset" mapstructure:"reset"`
		Core  string `json:"core" mapstructure:"core"`
	}

	// WebConfig configures the website build.
	WebConfig struct {
		Out   DirPath `json:"out" mapstructure:"out"`
		Title string  `json:"title" mapstructure:"title"`
	}

	// SassConfig configures the style compiler.
	SassConfig struct {
		// Binary is the Dart Sass executable name or path.
		Binary string `json:"binary" mapstructure:"binary"`
		// LoadPaths are extra import directories, relative to the project.
		LoadPaths []string `json:"load_paths" mapstructure:"load_paths"`
	}

	// Config is the resolved project configuration. It is built once per run
	// and not modified afterwards.
	Config struct {
		Name    string       `json:"name" mapstructure:"name"`
		Src     DirPath      `json:"src" mapstructure:"src"`
		Out     DirPath      `json:"out" mapstructure:"out"`
		Groups  []string     `json:"groups" mapstructure:"groups"`
		Exclude []string     `json:"exclude" mapstructure:"exclude"`
		Remote  RemoteConfig `json:"remote" mapstructure:"remote"`
		Web     WebConfig    `json:"web" mapstructure:"web"`
		Sass    SassConfig   `json:"sass" mapstructure:"sass"`

		// Copies and Variables keep declaration order and are read from the
		// validated document directly.
		Copies    []CopyEntry     `json:"copies" mapstructure:"-"`
		Variables *variable.Table `json:"-" mapstructure:"-"`

		// ProjectDir anchors relative paths.
		ProjectDir string `json:"-" mapstructure:"-"`
		// Source is the rc file the config was read from, empty for defaults.
		Source string `json:"-" mapstructure:"-"`
	}
)

// DefaultGroups returns the groups expanded by default, in processing order.
func DefaultGroups() []string {
	return []string{"content", "form", "components", "utilities"}
}

// DefaultConfig returns the configuration used when no rc file exists.
func DefaultConfig() *Config {
	return &Config{
		Name:    DefaultName,
		Src:     DefaultSrc,
		Out:     DefaultOut,
		Groups:  DefaultGroups(),
		Exclude: []string{SkinsGroup},
		Remote: RemoteConfig{
			Reset: DefaultResetURL,
			Core:  DefaultCoreURL,
		},
		Web: WebConfig{
			Out:   DefaultWebOut,
			Title: DefaultWebTitle,
		},
		Sass: SassConfig{
			Binary:    DefaultSassBinary,
			LoadPaths: []string{},
		},
		Copies:     []CopyEntry{},
		Variables:  variable.Defaults(),
		ProjectDir: ".",
	}
}

// Resolve anchors p at the project directory unless it is absolute.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.ProjectDir, filepath.FromSlash(p))
}

// SrcDir is the resolved source directory.
func (c *Config) SrcDir() string { return c.Resolve(string(c.Src)) }

// OutDir is the resolved soul output directory.
func (c *Config) OutDir() string { return c.Resolve(string(c.Out)) }

// WebOutDir is the resolved website output directory.
func (c *Config) WebOutDir() string { return c.Resolve(string(c.Web.Out)) }

// LoadPaths are the resolved Sass load paths.
func (c *Config) LoadPaths() []string {
	paths := make([]string, len(c.Sass.LoadPaths))
	for i, p := range c.Sass.LoadPaths {
		paths[i] = c.Resolve(p)
	}
	return paths
}

// ProcessedGroups returns the configured groups minus the excluded ones,
// in configured order.
func (c *Config) ProcessedGroups() []string {
	groups := make([]string, 0, len(c.Groups))
	for _, g := range c.Groups {
		if !slices.Contains(c.Exclude, g) {
			groups = append(groups, g)
		}
	}
	return groups
}

// IsValid returns whether the Config has valid fields, delegating to each
// field and to the variable table.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	dirs := []struct {
		field string
		path  DirPath
	}{
		{"src", c.Src},
		{"out", c.Out},
		{"web.out", c.Web.Out},
	}
	for _, d := range dirs {
		if valid, fieldErrs := d.path.IsValid(d.field); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for _, g := range slices.Concat(c.Groups, c.Exclude) {
		if !groupNamePattern.MatchString(g) {
			errs = append(errs, &InvalidGroupNameError{Value: g})
		}
	}
	for _, e := range c.Copies {
		if valid, fieldErrs := e.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if c.Variables != nil {
		if valid, fieldErrs := c.Variables.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	slices.Sort(msgs)
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the DirPath.
func (p DirPath) String() string { return string(p) }

// IsValid returns whether the DirPath is usable for field.
func (p DirPath) IsValid(field string) (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidDirPathError{Field: field, Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDirPathError.
func (e *InvalidDirPathError) Error() string {
	return fmt.Sprintf("invalid %s directory %q: must be non-empty", e.Field, e.Value)
}

// Unwrap returns ErrInvalidDirPath for errors.Is() compatibility.
func (e *InvalidDirPathError) Unwrap() error { return ErrInvalidDirPath }

// IsValid returns whether both sides of the entry are set.
func (e CopyEntry) IsValid() (bool, []error) {
	if strings.TrimSpace(e.From) == "" || strings.TrimSpace(e.To) == "" {
		return false, []error{&InvalidCopyEntryError{Entry: e}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCopyEntryError.
func (e *InvalidCopyEntryError) Error() string {
	return fmt.Sprintf("invalid copy entry %q -> %q: both sides must be non-empty", e.Entry.From, e.Entry.To)
}

// Unwrap returns ErrInvalidCopyEntry for errors.Is() compatibility.
func (e *InvalidCopyEntryError) Unwrap() error { return ErrInvalidCopyEntry }

// Error implements the error interface for InvalidGroupNameError.
func (e *InvalidGroupNameError) Error() string {
	return fmt.Sprintf("invalid group name %q: use letters, digits and '_'", e.Value)
}

// Unwrap returns ErrInvalidGroupName for errors.Is() compatibility.
func (e *InvalidGroupNameError) Unwrap() error { return ErrInvalidGroupName }
