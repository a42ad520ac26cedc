// SPDX-License-Identifier: MPL-2.0

package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fortytwo/demeter/internal/catalog"
)

var (
	// ErrConfiguration matches every selection failure. Such failures are
	// fixed by the operator and the invocation re-run.
	ErrConfiguration = errors.New("invalid module configuration")
	// ErrEmptySelection is returned when the property holds no module names.
	ErrEmptySelection = errors.New("empty module selection")
	// ErrUnknownModules is returned when the property names modules missing from the catalog.
	ErrUnknownModules = errors.New("unknown modules")
)

type (
	// EmptySelectionError is returned when a non-blank property reduces to
	// zero tokens, e.g. ",,".
	EmptySelectionError struct {
		Property string
		Raw      string
	}

	// UnknownModulesError lists every requested name that is not a catalog module.
	UnknownModulesError struct {
		Property string
		// Unknown holds the offending tokens in the order they were given.
		Unknown []string
		// Valid holds the catalog names in catalog order.
		Valid []catalog.Name
	}
)

// Error implements the error interface.
func (e *EmptySelectionError) Error() string {
	return fmt.Sprintf("property %s is empty: use %q or a comma-separated list", e.Property, All)
}

// Unwrap returns ErrEmptySelection and ErrConfiguration.
func (e *EmptySelectionError) Unwrap() []error {
	return []error{ErrEmptySelection, ErrConfiguration}
}

// Error implements the error interface.
func (e *UnknownModulesError) Error() string {
	return fmt.Sprintf("unknown modules in %s: %s; valid values: %s",
		e.Property, strings.Join(e.Unknown, ", "), catalog.JoinNames(e.Valid, ", "))
}

// Unwrap returns ErrUnknownModules and ErrConfiguration.
func (e *UnknownModulesError) Unwrap() []error {
	return []error{ErrUnknownModules, ErrConfiguration}
}
