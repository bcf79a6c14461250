// SPDX-License-Identifier: MPL-2.0

package part

import (
	"strconv"
	"strings"
)

// Placeholder tokens understood in part templates.
const (
	TokenBase    = "[base]"
	TokenDefault = "[default]"
	TokenVariant = "[variant]"
	TokenKey     = "#{$key}"
	TokenValue   = "#{$value}"

	// DefaultTemplate is the template name of the default variant.
	DefaultTemplate = "default" + StyleExt
)

// KeyToken returns the key placeholder of the n-th (1-based) combined component.
func KeyToken(n int) string { return "#{$key" + strconv.Itoa(n) + "}" }

// ValueToken returns the value placeholder of the n-th (1-based) combined component.
func ValueToken(n int) string { return "#{$value" + strconv.Itoa(n) + "}" }

// selector renders a class selector for a generated name.
func selector(name string) string { return "." + name }

// substitute replaces every occurrence of each token in a single pass, so a
// substituted value is never re-scanned for tokens.
func substitute(tmpl string, oldnew ...string) string {
	return strings.NewReplacer(oldnew...).Replace(tmpl)
}
