// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Both the configuration file and the module catalog file follow the same
// three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with the schema definition
//  3. Validate and decode into a Go value
//
// # Usage
//
//	//go:embed catalog_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseFile[fileCatalog](schema, "catalog.cue", "#Catalog")
//	if err != nil {
//	    return nil, err // *cueutil.FileError carries per-field issues
//	}
//	return result.Value, nil
package cueutil
