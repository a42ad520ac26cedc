// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the demeter command tree.
//
// Every command is built by a constructor that receives the *App composition
// root, so tests can build a fresh tree with injected configuration, catalog
// and output writers.
package cmd
