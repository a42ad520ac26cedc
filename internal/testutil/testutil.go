// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustChdir changes the working directory to dir and returns a func that
// restores the original one.
func MustChdir(t testing.TB, dir string) func() {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory to %s: %v", dir, err)
	}
	return func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Errorf("failed to restore directory to %s: %v", originalWd, err)
		}
	}
}

// MustUnsetenv unsets key and returns a func that restores its previous value.
func MustUnsetenv(t testing.TB, key string) func() {
	t.Helper()
	originalValue, hadValue := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset env %s: %v", key, err)
	}
	return func() {
		if hadValue {
			if err := os.Setenv(key, originalValue); err != nil {
				t.Errorf("failed to restore env %s: %v", key, err)
			}
		}
	}
}

// UnsetEnvPrefix removes every environment variable whose name starts with
// prefix. Call it from TestMain so the developer's shell cannot leak
// overrides into tests.
func UnsetEnvPrefix(prefix string) {
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, prefix) {
			_ = os.Unsetenv(key)
		}
	}
}

// MustWriteFile writes content to dir/name, creating dir if needed, and
// returns the file path.
func MustWriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
