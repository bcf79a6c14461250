// SPDX-License-Identifier: MPL-2.0

package variable

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	// KindDisabled marks an axis that was explicitly switched off (null or false).
	// A disabled axis stays in the table so it can override a default, but it
	// never participates in expansion.
	KindDisabled Kind = iota
	// KindSequence is the array form: key and value are the same scalar.
	KindSequence
	// KindKeyedMap is the object form: each key maps to its own value.
	KindKeyedMap

	// CombinedDelimiter joins base axis names into a combined axis name.
	CombinedDelimiter = "_and_"
	// MaxCombinedDepth is the largest number of components a combined axis may name.
	MaxCombinedDepth = 3
)

// reservedKeys would make a variant share its export path with the
// aggregator ("-all") or the default alias ("-default").
var reservedKeys = []string{"all", "default"}

var (
	// ErrInvalidAxisKey is returned when an axis key cannot be used in an export path.
	ErrInvalidAxisKey = errors.New("invalid axis key")
	// ErrInvalidAxisName is returned when an axis name is empty or malformed.
	ErrInvalidAxisName = errors.New("invalid axis name")

	axisKeyPattern  = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	axisNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

type (
	// Kind tags the resolved shape of an Axis.
	Kind int

	// Entry is one key/value pair of an axis in its string form.
	Entry struct {
		Key   string
		Value string
	}

	// Axis is a named dimension of variation. The zero value is a disabled axis.
	Axis struct {
		kind    Kind
		entries []Entry
	}

	// InvalidAxisKeyError is returned when a key would introduce a stray
	// "-" or "/" delimiter into generated export paths, or is reserved.
	InvalidAxisKeyError struct {
		Axis     string
		Key      string
		Reserved bool
	}

	// InvalidAxisNameError is returned when an axis name does not match the
	// lower-case snake-case naming convention.
	InvalidAxisNameError struct {
		Name string
	}
)

// Sequence builds an array-form axis. Each value doubles as its key.
func Sequence(values ...string) Axis {
	entries := make([]Entry, len(values))
	for i, v := range values {
		entries[i] = Entry{Key: v, Value: v}
	}
	return Axis{kind: KindSequence, entries: entries}
}

// KeyedMap builds an object-form axis from ordered pairs.
func KeyedMap(pairs ...Entry) Axis {
	return Axis{kind: KindKeyedMap, entries: slices.Clone(pairs)}
}

// Disabled returns an axis that overrides a default without expanding anything.
func Disabled() Axis {
	return Axis{kind: KindDisabled}
}

// Kind returns the resolved shape of the axis.
func (a Axis) Kind() Kind { return a.kind }

// Enabled reports whether the axis participates in expansion at all.
// An empty sequence is still enabled; it simply yields no entries.
func (a Axis) Enabled() bool { return a.kind != KindDisabled }

// Len returns the number of entries.
func (a Axis) Len() int { return len(a.entries) }

// Entries returns a copy of the ordered entries.
func (a Axis) Entries() []Entry { return slices.Clone(a.entries) }

// Keys returns the ordered keys of the axis.
func (a Axis) Keys() []string {
	keys := make([]string, len(a.entries))
	for i, e := range a.entries {
		keys[i] = e.Key
	}
	return keys
}

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindDisabled:
		return "disabled"
	case KindSequence:
		return "sequence"
	case KindKeyedMap:
		return "keyed-map"
	default:
		return "unknown"
	}
}

// FormatNumber renders a numeric axis value the way it is written in a
// stylesheet: integers without a fraction, decimals without trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// IsCombined reports whether name joins several base axes.
func IsCombined(name string) bool {
	return strings.Contains(name, CombinedDelimiter)
}

// SplitCombined returns the base axis names of a combined axis name.
func SplitCombined(name string) []string {
	return strings.Split(name, CombinedDelimiter)
}

// IsValid checks that every key of the axis is safe to embed in an export
// path. The axis name is only used for error reporting.
func (a Axis) IsValid(name string) (bool, []error) {
	var errs []error
	for _, e := range a.entries {
		switch {
		case !axisKeyPattern.MatchString(e.Key):
			errs = append(errs, &InvalidAxisKeyError{Axis: name, Key: e.Key})
		case slices.Contains(reservedKeys, e.Key):
			errs = append(errs, &InvalidAxisKeyError{Axis: name, Key: e.Key, Reserved: true})
		}
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// ValidateName checks an axis name against the naming convention.
func ValidateName(name string) error {
	if !axisNamePattern.MatchString(name) {
		return &InvalidAxisNameError{Name: name}
	}
	return nil
}

// Error implements the error interface for InvalidAxisKeyError.
func (e *InvalidAxisKeyError) Error() string {
	if e.Reserved {
		return fmt.Sprintf("invalid key %q in axis %q (reserved: %s)", e.Key, e.Axis, strings.Join(reservedKeys, ", "))
	}
	return fmt.Sprintf("invalid key %q in axis %q (allowed: letters, digits, underscore)", e.Key, e.Axis)
}

// Unwrap returns ErrInvalidAxisKey for errors.Is() compatibility.
func (e *InvalidAxisKeyError) Unwrap() error { return ErrInvalidAxisKey }

// Error implements the error interface for InvalidAxisNameError.
func (e *InvalidAxisNameError) Error() string {
	return fmt.Sprintf("invalid axis name %q (expected lower snake_case)", e.Name)
}

// Unwrap returns ErrInvalidAxisName for errors.Is() compatibility.
func (e *InvalidAxisNameError) Unwrap() error { return ErrInvalidAxisName }
