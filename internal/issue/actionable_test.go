// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load catalog"},
			expected: "failed to load catalog",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load catalog", Resource: "./catalog.cue"},
			expected: "failed to load catalog: ./catalog.cue",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "resolve module selection", Cause: errors.New("boom")},
			expected: "failed to resolve module selection: boom",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load catalog",
				Resource:  "./catalog.cue",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to load catalog: ./catalog.cue: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := WrapWithOperation(fmt.Errorf("outer: %w", sentinel), "plan wiring")
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should reach the wrapped sentinel")
	}
	if WrapWithOperation(nil, "noop") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
}

func TestActionableError_DetailsChain(t *testing.T) {
	t.Parallel()

	multi := &multiErr{errs: []error{errors.New("first"), errors.New("second")}}
	err := NewErrorContext().
		WithOperation("resolve module selection").
		WithResource("demeter.modules=nope").
		WithSuggestion("Run 'demeter modules list'").
		WithSuggestion("Use \"all\" to select every module").
		Wrap(fmt.Errorf("wrapped: %w", multi)).
		Build()

	short := err.Details(false)
	if !strings.Contains(short, "  • Run 'demeter modules list'") {
		t.Errorf("Details(false) missing suggestion:\n%s", short)
	}
	if strings.Contains(short, "Error chain:") {
		t.Errorf("Details(false) should not include the chain:\n%s", short)
	}

	verbose := err.Details(true)
	for _, want := range []string{"Error chain:", "1. wrapped: multi", "2. multi", "3. first", "4. second"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Details(true) missing %q:\n%s", want, verbose)
		}
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}

	ae := NewErrorContext().WithOperation("load configuration").WithIssue(ConfigLoadFailedId).Build()
	if ae.Issue != ConfigLoadFailedId {
		t.Errorf("Issue = %d, want %d", ae.Issue, ConfigLoadFailedId)
	}
	if ae.HelpIssue() != Get(ConfigLoadFailedId) {
		t.Error("HelpIssue() should return the catalogued issue")
	}
	if (&ActionableError{Operation: "x"}).HelpIssue() != nil {
		t.Error("HelpIssue() without an issue should return nil")
	}
}

type multiErr struct{ errs []error }

func (m *multiErr) Error() string   { return "multi" }
func (m *multiErr) Unwrap() []error { return m.errs }

func TestActionableError_Details(t *testing.T) {
	t.Parallel()

	bare := &ActionableError{Operation: "plan wiring", Cause: errors.New("boom")}
	if got := bare.Details(false); got != "" {
		t.Errorf("Details(false) = %q, want empty", got)
	}

	ae := &ActionableError{Operation: "plan wiring", Suggestions: []string{"try again"}}
	if got, want := ae.Details(false), "\n\n  • try again"; got != want {
		t.Errorf("Details(false) = %q, want %q", got, want)
	}
}
