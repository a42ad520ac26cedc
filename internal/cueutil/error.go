// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is returned when input exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file too large")

type (
	// FieldIssue is a single CUE validation problem.
	FieldIssue struct {
		// Path is the JSON-style path to the invalid value (e.g. "modules[2].name").
		// Empty for file-level problems such as syntax errors.
		Path    string
		Message string
	}

	// FileError collects every CUE problem reported for one file.
	FileError struct {
		FilePath string
		Issues   []FieldIssue
		// cause is the original error when it did not come from CUE.
		cause error
	}
)

// Error renders the issues as "<file>: <path>: <message>". Several issues are
// listed one per line.
func (e *FileError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.FilePath, e.cause)
	}

	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			lines = append(lines, issue.Path+": "+issue.Message)
		} else {
			lines = append(lines, issue.Message)
		}
	}
	if len(lines) == 1 {
		return fmt.Sprintf("%s: %s", e.FilePath, lines[0])
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(lines, "\n  "))
}

// Unwrap returns the non-CUE cause, if any.
func (e *FileError) Unwrap() error { return e.cause }

// FormatError converts a CUE error into a *FileError with JSON-path prefixes.
// Non-CUE errors are wrapped as-is.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return &FileError{FilePath: filePath, cause: err}
	}

	fe := &FileError{FilePath: filePath}
	for _, e := range cueErrs {
		pathStr := formatPath(cueerrors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path at the start of the message.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}
		fe.Issues = append(fe.Issues, FieldIssue{Path: pathStr, Message: msg})
	}
	return fe
}

// formatPath converts a CUE path (["modules", "0", "name"]) into
// JSON-path notation ("modules[0].name").
func formatPath(path []string) string {
	var result strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			result.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			result.WriteString(".")
		}
		result.WriteString(part)
	}
	return result.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize returns an error wrapping ErrFileTooLarge when data exceeds maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: %w: %d bytes exceeds maximum %d bytes",
			filename, ErrFileTooLarge, len(data), maxSize)
	}
	return nil
}
