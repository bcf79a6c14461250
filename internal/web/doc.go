// SPDX-License-Identifier: MPL-2.0

// Package web builds the static showcase website of a generated soul: an
// index with navigation and a skin selector, and one page per part showing
// its highlighted sources, the selectors it defines and its documentation.
package web
