// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/fortytwo/demeter/internal/issue"
	"github.com/fortytwo/demeter/internal/selection"
)

const (
	// ExitFailure is returned for runtime failures.
	ExitFailure = 1
	// ExitConfiguration is returned when the operator has to fix the
	// configuration or the catalog before re-running.
	ExitConfiguration = 2
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps err to the process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if isConfigurationError(err) {
		return ExitConfiguration
	}
	return ExitFailure
}

func isConfigurationError(err error) bool {
	if errors.Is(err, selection.ErrConfiguration) {
		return true
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return false
	}
	switch ae.Issue {
	case issue.EmptySelectionId, issue.UnknownModuleId, issue.ConfigLoadFailedId,
		issue.CatalogLoadFailedId, issue.DependencyCycleId:
		return true
	default:
		return false
	}
}
