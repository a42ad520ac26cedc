// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize is the default maximum file size for CUE parsing (1MB).
// Configuration and catalog files are tiny; anything larger is a mistake.
const DefaultMaxFileSize int64 = 1 << 20

type (
	// ParseResult contains the result of a successful CUE parse operation.
	ParseResult[T any] struct {
		// Value is the decoded Go value.
		Value *T
		// Unified is the unified CUE value, kept for callers that need
		// additional lookups after decoding.
		Unified cue.Value
	}

	parseOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option configures parsing behavior.
	Option func(*parseOptions)
)

// WithMaxFileSize sets the maximum allowed input size.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) { o.maxFileSize = size }
}

// WithConcrete sets whether all values must be concrete after unification.
// Default is true. Config files use false because every field is optional.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) { o.concrete = concrete }
}

// WithFilename sets the filename reported in errors.
func WithFilename(name string) Option {
	return func(o *parseOptions) { o.filename = name }
}

// ParseAndDecode validates data against the schema definition at schemaPath
// (e.g. "#Config") and decodes the unified value into T.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := parseOptions{maxFileSize: DefaultMaxFileSize, concrete: true}
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{Value: &result, Unified: unified}, nil
}

// ParseFile reads path and runs ParseAndDecode with the path as filename.
func ParseFile[T any](schema []byte, path, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	opts = append([]Option{WithFilename(path)}, opts...)
	return ParseAndDecode[T](schema, data, schemaPath, opts...)
}
