// SPDX-License-Identifier: MPL-2.0

package variable

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidTable is the sentinel error wrapped by InvalidTableError.
var ErrInvalidTable = errors.New("invalid variable table")

type (
	// Table is an ordered mapping from axis name to Axis. A Table is built once
	// per run and then only read; it is safe for concurrent readers.
	Table struct {
		names []string
		axes  map[string]Axis
	}

	// InvalidTableError collects the axis-level validation errors of a Table.
	InvalidTableError struct {
		FieldErrors []error
	}
)

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{axes: make(map[string]Axis)}
}

// Set stores an axis. Replacing an existing axis keeps its original position.
func (t *Table) Set(name string, a Axis) {
	if _, exists := t.axes[name]; !exists {
		t.names = append(t.names, name)
	}
	t.axes[name] = a
}

// Get returns the stored axis, including disabled ones.
func (t *Table) Get(name string) (Axis, bool) {
	a, ok := t.axes[name]
	return a, ok
}

// Lookup returns the axis only when it is present and enabled. This is the
// truthiness check expansion relies on: absent and disabled axes look the same.
func (t *Table) Lookup(name string) (Axis, bool) {
	a, ok := t.axes[name]
	if !ok || !a.Enabled() {
		return Axis{}, false
	}
	return a, true
}

// Names returns the axis names in table order.
func (t *Table) Names() []string { return slices.Clone(t.names) }

// Len returns the number of stored axes.
func (t *Table) Len() int { return len(t.names) }

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		names: slices.Clone(t.names),
		axes:  make(map[string]Axis, len(t.axes)),
	}
	for k, v := range t.axes {
		c.axes[k] = v
	}
	return c
}

// Merge returns a new table holding t overridden key by key by overrides.
// An override replaces the whole axis; entries are never merged. Axes that
// only exist in overrides are appended in their override order.
func (t *Table) Merge(overrides *Table) *Table {
	merged := t.Clone()
	if overrides == nil {
		return merged
	}
	for _, name := range overrides.names {
		merged.Set(name, overrides.axes[name])
	}
	return merged
}

// IsValid validates every axis name and key in the table.
func (t *Table) IsValid() (bool, []error) {
	var errs []error
	for _, name := range t.names {
		if err := ValidateName(name); err != nil {
			errs = append(errs, err)
			continue
		}
		if valid, fieldErrs := t.axes[name].IsValid(name); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidTableError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTableError.
func (e *InvalidTableError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid variable table: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid variable table: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidTable for errors.Is() compatibility.
func (e *InvalidTableError) Unwrap() error { return ErrInvalidTable }
