// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on error instead
// of returning it: working-directory and environment manipulation, and file
// fixtures.
package testutil
