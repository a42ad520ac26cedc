// SPDX-License-Identifier: MPL-2.0

// Package catalog defines the set of modules a demeter build can select from.
//
// A Catalog is ordered and immutable: the order modules were declared in is
// the order every listing, diagnostic and wiring plan uses. The compiled-in
// Default catalog mirrors the demeter-backend project layout; LoadFile reads
// an alternative catalog from a CUE file.
package catalog
