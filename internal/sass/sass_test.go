// SPDX-License-Identifier: MPL-2.0

package sass

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeSass writes a shell script standing in for the sass binary.
func fakeSass(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "sass")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCopyCompiler(t *testing.T) {
	t.Parallel()

	got, err := CopyCompiler{}.Compile(context.Background(), ".a { b: c; }", []string{"/x"})
	if err != nil || got != ".a { b: c; }" {
		t.Errorf("Compile() = %q, %v", got, err)
	}
}

func TestNewExecCompiler_NotFound(t *testing.T) {
	t.Parallel()

	_, err := NewExecCompiler(filepath.Join(t.TempDir(), "no-such-sass"))
	if !errors.Is(err, ErrCompilerNotFound) {
		t.Errorf("NewExecCompiler() error = %v, want ErrCompilerNotFound", err)
	}
}

func TestExecCompiler_Compile(t *testing.T) {
	t.Parallel()

	// Echo the arguments, then the source, so both can be asserted.
	bin := fakeSass(t, `echo "$@"; cat`)
	c, err := NewExecCompiler(bin, WithStyle("compressed"))
	if err != nil {
		t.Fatalf("NewExecCompiler() error = %v", err)
	}

	got, err := c.Compile(context.Background(), ".x{}", []string{"/dist", "/node_modules"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for _, want := range []string{"--stdin", "--style=compressed", "--load-path=/dist", "--load-path=/node_modules", ".x{}"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestExecCompiler_Failure(t *testing.T) {
	t.Parallel()

	bin := fakeSass(t, `echo "Error: Undefined variable." >&2; exit 65`)
	c, err := NewExecCompiler(bin)
	if err != nil {
		t.Fatalf("NewExecCompiler() error = %v", err)
	}

	_, err = c.Compile(context.Background(), ".x { color: $nope; }", nil)
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("Compile() error = %v, want *CompileError", err)
	}
	if !strings.Contains(compileErr.Error(), "Undefined variable") {
		t.Errorf("Error() = %q", compileErr.Error())
	}
}
