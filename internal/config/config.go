// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/unistylus/unistylus/internal/issue"
	"github.com/unistylus/unistylus/internal/variable"
	"github.com/unistylus/unistylus/pkg/cueutil"

	"cuelang.org/go/cue"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "unistylus"
	// EnvPrefix prefixes the environment overrides (UNISTYLUS_SRC, ...).
	EnvPrefix = "UNISTYLUS"
	// RCFileBase is the rc file name without extension.
	RCFileBase = ".unistylusrc"
	// DefaultRCFile is the rc file written by init.
	DefaultRCFile = RCFileBase + ".cue"
)

// RCFileNames lists the rc file names looked up in a project directory, in
// order of precedence.
var RCFileNames = []string{RCFileBase + ".cue", RCFileBase + ".json", RCFileBase + ".toml"}

//go:embed config_schema.cue
var configSchema []byte

// loadWithOptions reads, validates and resolves the configuration without any
// package-level state.
func loadWithOptions(ctx context.Context, fs afero.Fs, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("name", defaults.Name)
	v.SetDefault("src", defaults.Src.String())
	v.SetDefault("out", defaults.Out.String())
	v.SetDefault("groups", defaults.Groups)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("remote.reset", defaults.Remote.Reset)
	v.SetDefault("remote.core", defaults.Remote.Core)
	v.SetDefault("web.out", defaults.Web.Out.String())
	v.SetDefault("web.title", defaults.Web.Title)
	v.SetDefault("sass.binary", defaults.Sass.Binary)
	v.SetDefault("sass.load_paths", defaults.Sass.LoadPaths)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	projectDir := opts.ProjectDir
	rcPath, err := findRCFile(fs, opts)
	if err != nil {
		return nil, err
	}
	if projectDir == "" {
		projectDir = "."
		if opts.ConfigFilePath != "" {
			projectDir = filepath.Dir(opts.ConfigFilePath)
		}
	}

	overrides := variable.NewTable()
	copies := []CopyEntry{}
	if rcPath != "" {
		unified, err := decodeRCFile(fs, rcPath)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(rcPath).
				WithSuggestion("Check that the file contains valid CUE, JSON or TOML syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Use 'unistylus config show' to see the default configuration").
				WithIssue(issue.ConfigInvalidId).
				Wrap(err).
				BuildError()
		}
		if overrides, err = variablesFromValue(unified.LookupPath(cue.ParsePath("variables"))); err != nil {
			return nil, issue.WrapWithContext(err, "read variables", rcPath)
		}
		if copies, err = copiesFromValue(unified.LookupPath(cue.ParsePath("copies"))); err != nil {
			return nil, issue.WrapWithContext(err, "read copies", rcPath)
		}
		if err := mergeIntoViper(v, unified); err != nil {
			return nil, issue.WrapWithContext(err, "load configuration", rcPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Copies = copies
	cfg.Variables = variable.Defaults().Merge(overrides)
	cfg.ProjectDir = projectDir
	cfg.Source = rcPath

	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(rcPath).
			WithSuggestion("Variable keys may only contain letters, digits and '_'").
			WithSuggestion("Group names must be plain directory names").
			WithIssue(issue.ConfigInvalidId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, nil
}

// findRCFile returns the rc file to read, or "" when defaults apply.
func findRCFile(fs afero.Fs, opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(fs, opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithIssue(issue.ConfigNotFoundId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	dir := opts.ProjectDir
	if dir == "" {
		dir = "."
	}
	for _, name := range RCFileNames {
		if p := filepath.Join(dir, name); fileExists(fs, p) {
			return p, nil
		}
	}

	if opts.Require {
		return "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(dir).
			WithSuggestion("Run 'unistylus init' to create " + DefaultRCFile).
			WithSuggestion("Run the command from the project root, or pass the project path").
			WithIssue(issue.ConfigNotFoundId).
			Wrap(fmt.Errorf("no %s file found", RCFileBase)).
			BuildError()
	}
	return "", nil
}

// decodeRCFile validates an rc file of any supported format against the
// #Config schema and returns the unified value.
func decodeRCFile(fs afero.Fs, path string) (cue.Value, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config file: %w", err)
	}
	format, err := cueutil.FormatOf(path)
	if err != nil {
		return cue.Value{}, err
	}
	return cueutil.Load(configSchema, "#Config", data, format, cueutil.WithFilename(path))
}

// mergeIntoViper merges the unordered part of the document into Viper,
// preserving defaults and environment overrides.
func mergeIntoViper(v *viper.Viper, unified cue.Value) error {
	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	delete(configMap, "variables")
	delete(configMap, "copies")
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// variablesFromValue builds the override table in declaration order.
func variablesFromValue(v cue.Value) (*variable.Table, error) {
	t := variable.NewTable()
	if !v.Exists() {
		return t, nil
	}
	fields, err := v.Fields()
	if err != nil {
		return nil, err
	}
	for fields.Next() {
		name := fields.Selector().Unquoted()
		axis, err := axisFromValue(fields.Value())
		if err != nil {
			return nil, fmt.Errorf("variables.%s: %w", name, err)
		}
		t.Set(name, axis)
	}
	return t, nil
}

func axisFromValue(v cue.Value) (variable.Axis, error) {
	if d, ok := v.Default(); ok {
		v = d
	}
	switch v.Kind() {
	case cue.NullKind:
		return variable.Disabled(), nil
	case cue.BoolKind:
		on, err := v.Bool()
		if err != nil {
			return variable.Axis{}, err
		}
		if !on {
			return variable.Disabled(), nil
		}
		return variable.Sequence(), nil
	case cue.ListKind:
		list, err := v.List()
		if err != nil {
			return variable.Axis{}, err
		}
		var values []string
		for list.Next() {
			s, err := scalarString(list.Value())
			if err != nil {
				return variable.Axis{}, err
			}
			values = append(values, s)
		}
		return variable.Sequence(values...), nil
	case cue.StructKind:
		fields, err := v.Fields()
		if err != nil {
			return variable.Axis{}, err
		}
		var entries []variable.Entry
		for fields.Next() {
			s, err := scalarString(fields.Value())
			if err != nil {
				return variable.Axis{}, err
			}
			entries = append(entries, variable.Entry{Key: fields.Selector().Unquoted(), Value: s})
		}
		return variable.KeyedMap(entries...), nil
	default:
		return variable.Axis{}, fmt.Errorf("unsupported axis value of kind %s", v.Kind())
	}
}

// scalarString renders an axis key or value. Numbers keep their shortest
// form, so 1.50 becomes "1.5" and 2 stays "2".
func scalarString(v cue.Value) (string, error) {
	switch v.Kind() {
	case cue.StringKind:
		return v.String()
	case cue.IntKind:
		i, err := v.Int64()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(i, 10), nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return "", err
		}
		return variable.FormatNumber(f), nil
	default:
		return "", fmt.Errorf("expected string or number, got %s", v.Kind())
	}
}

// copiesFromValue accepts a list of paths (copied to the same relative
// path) or a map of source to destination.
func copiesFromValue(v cue.Value) ([]CopyEntry, error) {
	copies := []CopyEntry{}
	if !v.Exists() {
		return copies, nil
	}
	if d, ok := v.Default(); ok {
		v = d
	}
	switch v.Kind() {
	case cue.ListKind:
		list, err := v.List()
		if err != nil {
			return nil, err
		}
		for list.Next() {
			p, err := list.Value().String()
			if err != nil {
				return nil, err
			}
			copies = append(copies, CopyEntry{From: p, To: p})
		}
	case cue.StructKind:
		fields, err := v.Fields()
		if err != nil {
			return nil, err
		}
		for fields.Next() {
			to, err := fields.Value().String()
			if err != nil {
				return nil, err
			}
			copies = append(copies, CopyEntry{From: fields.Selector().Unquoted(), To: to})
		}
	default:
		return nil, fmt.Errorf("copies: expected list or map, got %s", v.Kind())
	}
	return copies, nil
}

func fileExists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteDefault writes a default rc file into projectDir unless an rc file of
// any format already exists there. It returns the path of the rc file and
// whether it was created.
func WriteDefault(fs afero.Fs, projectDir string) (string, bool, error) {
	for _, name := range RCFileNames {
		if p := filepath.Join(projectDir, name); fileExists(fs, p) {
			return p, false, nil
		}
	}

	if err := fs.MkdirAll(projectDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create project directory: %w", err)
	}

	cfg := DefaultConfig()
	if abs, err := filepath.Abs(projectDir); err == nil && filepath.Base(abs) != string(filepath.Separator) {
		cfg.Name = filepath.Base(abs)
	}

	p := filepath.Join(projectDir, DefaultRCFile)
	if err := afero.WriteFile(fs, p, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return p, true, nil
}

// GenerateCUE generates a CUE representation of the configuration. Variables
// are written in table order; disabled axes are written as null.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// Unistylus configuration file.\n")
	sb.WriteString("// Every field is optional; see 'unistylus config show' for the defaults.\n\n")

	fmt.Fprintf(&sb, "name: %q\n", cfg.Name)
	fmt.Fprintf(&sb, "src:  %q\n", cfg.Src)
	fmt.Fprintf(&sb, "out:  %q\n", cfg.Out)

	if len(cfg.Copies) > 0 {
		sb.WriteString("\n")
		writeCopies(&sb, cfg.Copies)
	}

	sb.WriteString("\ngroups: " + cueList(cfg.Groups) + "\n")
	sb.WriteString("exclude: " + cueList(cfg.Exclude) + "\n")

	sb.WriteString("\nremote: {\n")
	fmt.Fprintf(&sb, "\treset: %q\n", cfg.Remote.Reset)
	fmt.Fprintf(&sb, "\tcore:  %q\n", cfg.Remote.Core)
	sb.WriteString("}\n")

	sb.WriteString("\nweb: {\n")
	fmt.Fprintf(&sb, "\tout:   %q\n", cfg.Web.Out)
	fmt.Fprintf(&sb, "\ttitle: %q\n", cfg.Web.Title)
	sb.WriteString("}\n")

	sb.WriteString("\nsass: {\n")
	fmt.Fprintf(&sb, "\tbinary: %q\n", cfg.Sass.Binary)
	if len(cfg.Sass.LoadPaths) > 0 {
		sb.WriteString("\tload_paths: " + cueList(cfg.Sass.LoadPaths) + "\n")
	}
	sb.WriteString("}\n")

	if cfg.Variables != nil && cfg.Variables.Len() > 0 {
		sb.WriteString("\nvariables: {\n")
		for _, name := range cfg.Variables.Names() {
			axis, _ := cfg.Variables.Get(name)
			fmt.Fprintf(&sb, "\t%s: %s\n", name, cueAxis(axis))
		}
		sb.WriteString("}\n")
	}

	return sb.String()
}

func writeCopies(sb *strings.Builder, copies []CopyEntry) {
	same := true
	for _, c := range copies {
		if c.From != c.To {
			same = false
			break
		}
	}
	if same {
		froms := make([]string, len(copies))
		for i, c := range copies {
			froms[i] = c.From
		}
		sb.WriteString("copies: " + cueList(froms) + "\n")
		return
	}
	sb.WriteString("copies: {\n")
	for _, c := range copies {
		fmt.Fprintf(sb, "\t%q: %q\n", c.From, c.To)
	}
	sb.WriteString("}\n")
}

func cueList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func cueAxis(a variable.Axis) string {
	switch a.Kind() {
	case variable.KindDisabled:
		return "null"
	case variable.KindKeyedMap:
		fields := make([]string, 0, a.Len())
		for _, e := range a.Entries() {
			fields = append(fields, strconv.Quote(e.Key)+": "+cueScalar(e.Value))
		}
		return "{" + strings.Join(fields, ", ") + "}"
	default:
		return cueList(a.Keys())
	}
}

// cueScalar writes numeric values as numbers so they round-trip.
func cueScalar(s string) string {
	if _, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "xXeEnN+") {
		return s
	}
	return strconv.Quote(s)
}
