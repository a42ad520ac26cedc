// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSchema = `
#Catalog: {
	baseline: string
	modules: [...{
		name:         string
		description?: string
	}]
}
`

type testCatalog struct {
	Baseline string `json:"baseline"`
	Modules  []struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	} `json:"modules"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid data decodes", func(t *testing.T) {
		t.Parallel()
		data := []byte(`
baseline: "common"
modules: [{name: "common"}, {name: "ventas", description: "Sales"}]
`)
		result, err := ParseAndDecode[testCatalog]([]byte(testSchema), data, "#Catalog")
		if err != nil {
			t.Fatalf("ParseAndDecode() error = %v", err)
		}
		if result.Value.Baseline != "common" {
			t.Errorf("Baseline = %q, want common", result.Value.Baseline)
		}
		if len(result.Value.Modules) != 2 || result.Value.Modules[1].Description != "Sales" {
			t.Errorf("Modules = %+v", result.Value.Modules)
		}
	})

	t.Run("type mismatch reports path", func(t *testing.T) {
		t.Parallel()
		data := []byte(`
baseline: "common"
modules: [{name: 42}]
`)
		_, err := ParseAndDecode[testCatalog]([]byte(testSchema), data, "#Catalog", WithFilename("catalog.cue"))
		var fe *FileError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FileError, got %T: %v", err, err)
		}
		if fe.FilePath != "catalog.cue" {
			t.Errorf("FilePath = %q, want catalog.cue", fe.FilePath)
		}
		if !strings.Contains(err.Error(), "modules[0].name") {
			t.Errorf("error should contain field path, got: %v", err)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()
		_, err := ParseAndDecode[testCatalog]([]byte(testSchema), []byte(`baseline: "common`), "#Catalog")
		if err == nil {
			t.Fatal("expected error for unterminated string")
		}
		if !strings.Contains(err.Error(), "<input>") {
			t.Errorf("error should mention default filename, got: %v", err)
		}
	})

	t.Run("non-concrete rejected by default", func(t *testing.T) {
		t.Parallel()
		_, err := ParseAndDecode[testCatalog]([]byte(testSchema), []byte(`modules: []`), "#Catalog")
		if err == nil {
			t.Fatal("expected error for missing baseline")
		}
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()
		_, err := ParseAndDecode[testCatalog]([]byte(testSchema), []byte(`baseline: "common"`), "#Catalog", WithMaxFileSize(4))
		if !errors.Is(err, ErrFileTooLarge) {
			t.Fatalf("expected ErrFileTooLarge, got %v", err)
		}
	})

	t.Run("unknown schema definition", func(t *testing.T) {
		t.Parallel()
		_, err := ParseAndDecode[testCatalog]([]byte(testSchema), []byte(`baseline: "common"`), "#Missing")
		if err == nil || !strings.Contains(err.Error(), "#Missing") {
			t.Fatalf("expected missing definition error, got %v", err)
		}
	})
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.cue")
	if err := os.WriteFile(path, []byte(`baseline: "common", modules: [{name: "common"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := ParseFile[testCatalog]([]byte(testSchema), path, "#Catalog")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if result.Value.Baseline != "common" {
		t.Errorf("Baseline = %q, want common", result.Value.Baseline)
	}

	if _, err := ParseFile[testCatalog]([]byte(testSchema), filepath.Join(dir, "missing.cue"), "#Catalog"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	if FormatError(nil, "x.cue") != nil {
		t.Error("FormatError(nil) should return nil")
	}

	plain := errors.New("boom")
	err := FormatError(plain, "x.cue")
	if !errors.Is(err, plain) {
		t.Errorf("non-CUE error should be unwrappable, got %v", err)
	}
	if err.Error() != "x.cue: boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "x.cue: boom")
	}
}

func TestFileError_MultipleIssues(t *testing.T) {
	t.Parallel()

	fe := &FileError{
		FilePath: "config.cue",
		Issues: []FieldIssue{
			{Path: "ui.verbose", Message: "expected bool"},
			{Message: "syntax error"},
		},
	}
	want := "config.cue: validation failed:\n  ui.verbose: expected bool\n  syntax error"
	if fe.Error() != want {
		t.Errorf("Error() = %q, want %q", fe.Error(), want)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{path: nil, want: ""},
		{path: []string{"baseline"}, want: "baseline"},
		{path: []string{"modules", "0", "name"}, want: "modules[0].name"},
		{path: []string{"modules", "3", "requires", "1"}, want: "modules[3].requires[1]"},
		{path: []string{"0"}, want: "0"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
