// SPDX-License-Identifier: MPL-2.0

// Package sass compiles SCSS to CSS.
//
// The reference compiler is Dart Sass, driven as an external process. No Go
// implementation of Sass exists, so the process boundary is the integration
// point; CopyCompiler stands in when the binary is unavailable.
package sass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCompilerNotFound is returned when the Sass binary cannot be located.
var ErrCompilerNotFound = errors.New("sass compiler not found")

type (
	// Compiler turns SCSS source into CSS. Imports are resolved against
	// loadPaths.
	Compiler interface {
		Compile(ctx context.Context, source string, loadPaths []string) (string, error)
	}

	// ExecCompiler runs a Dart Sass binary reading the source from stdin.
	ExecCompiler struct {
		binary string
		style  string
	}

	// CopyCompiler returns the source unchanged.
	CopyCompiler struct{}

	// CompileError carries the compiler diagnostics of a failed run.
	CompileError struct {
		Stderr string
		Err    error
	}

	// ExecOption configures an ExecCompiler.
	ExecOption func(*ExecCompiler)
)

// WithStyle sets the output style ("expanded" or "compressed").
func WithStyle(style string) ExecOption {
	return func(c *ExecCompiler) { c.style = style }
}

// NewExecCompiler resolves binary in PATH (or as a path) and returns a
// compiler using it.
func NewExecCompiler(binary string, opts ...ExecOption) (*ExecCompiler, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCompilerNotFound, binary)
	}
	c := &ExecCompiler{binary: path, style: "expanded"}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Binary returns the resolved executable path.
func (c *ExecCompiler) Binary() string { return c.binary }

// Compile runs the binary once for source.
func (c *ExecCompiler) Compile(ctx context.Context, source string, loadPaths []string) (string, error) {
	args := []string{"--stdin", "--no-source-map", "--style=" + c.style}
	for _, p := range loadPaths {
		args = append(args, "--load-path="+p)
	}

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &CompileError{Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return stdout.String(), nil
}

// Compile returns source unchanged.
func (CopyCompiler) Compile(_ context.Context, source string, _ []string) (string, error) {
	return source, nil
}

// Error returns the compiler diagnostics, or the process error when the
// compiler printed nothing.
func (e *CompileError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("sass: %v", e.Err)
	}
	return "sass: " + e.Stderr
}

// Unwrap returns the process error.
func (e *CompileError) Unwrap() error { return e.Err }
