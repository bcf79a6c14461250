// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

var (
	// ErrValidation is the sentinel error wrapped by ValidationError.
	ErrValidation = errors.New("document validation failed")
	// ErrFileTooLarge is returned for documents above the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

type (
	// FieldIssue is one problem found in a document. Path is in JSON-path
	// notation ("copies[0]") and empty for document-level problems.
	FieldIssue struct {
		Path    string
		Message string
	}

	// ValidationError lists every problem CUE reported for a document.
	ValidationError struct {
		File   string
		Issues []FieldIssue
	}
)

// NewValidationError converts a CUE error into a *ValidationError for file.
// It returns nil for a nil err.
func NewValidationError(err error, file string) error {
	if err == nil {
		return nil
	}
	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return &ValidationError{File: file, Issues: []FieldIssue{{Message: err.Error()}}}
	}

	issues := make([]FieldIssue, 0, len(cueErrs))
	for _, e := range cueErrs {
		p := formatPath(cueerrors.Path(e))
		msg := e.Error()
		// CUE often repeats the path at the start of the message.
		if p != "" {
			if rest, ok := strings.CutPrefix(msg, p); ok {
				msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
			}
		}
		issues = append(issues, FieldIssue{Path: p, Message: msg})
	}
	return &ValidationError{File: file, Issues: issues}
}

// Error renders "<file>: <path>: <message>", one issue per line when there
// are several.
func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		if is.Path == "" {
			lines[i] = is.Message
		} else {
			lines[i] = is.Path + ": " + is.Message
		}
	}
	if len(lines) == 1 {
		return e.File + ": " + lines[0]
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(lines, "\n  "))
}

// Unwrap returns ErrValidation for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// formatPath renders a CUE error path (["copies", "0"]) in JSON-path notation
// ("copies[0]"). Numeric elements after the first are list indices.
func formatPath(path []string) string {
	var sb strings.Builder
	for i, elem := range path {
		switch {
		case i > 0 && isIndex(elem):
			sb.WriteString("[" + elem + "]")
		case i > 0:
			sb.WriteString("." + elem)
		default:
			sb.WriteString(elem)
		}
	}
	return sb.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize verifies that data does not exceed maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: %w: %d bytes exceeds maximum %d bytes", filename, ErrFileTooLarge, len(data), maxSize)
	}
	return nil
}
