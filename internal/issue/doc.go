// SPDX-License-Identifier: MPL-2.0

// Package issue holds demeter's user-facing error help: short actionable
// errors with suggestions, and longer Markdown help pages rendered with glamour.
package issue
