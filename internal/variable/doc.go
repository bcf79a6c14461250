// SPDX-License-Identifier: MPL-2.0

// Package variable models the variable axes that drive variant expansion.
//
// An axis is either a Sequence (array form, where every value is also its own
// key) or a KeyedMap (object form, where keys and values differ). The shape is
// resolved once when the axis is constructed so expansion code never inspects
// raw decoded values. A Table keeps axes in a stable order: framework defaults
// first, then user-only axes in the order they were declared.
package variable
