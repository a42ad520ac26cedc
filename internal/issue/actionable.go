// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a user-facing error: what demeter was doing, what it
	// was looking at, and what the operator can try next.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("resolve module selection").
	//		WithResource("demeter.modules=ventas,nope").
	//		WithIssue(issue.UnknownModuleId).
	//		WithSuggestion("Run 'demeter modules list' to see valid names").
	//		Wrap(cause).
	//		Build()
	ActionableError struct {
		// Operation is a verb phrase such as "load catalog".
		Operation string
		// Resource names the file, property or value involved (optional).
		Resource string
		// Suggestions are short hints printed below the message (optional).
		Suggestions []string
		// Issue points at a longer help page in the issue catalog (optional).
		Issue Id
		Cause error
	}

	// ErrorContext builds an ActionableError incrementally.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		issue       Id
		cause       error
	}
)

func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithOperation wraps err with an operation. A nil err yields nil.
func WrapWithOperation(err error, operation string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Cause: err}
}

// Error returns "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// HelpIssue returns the catalogued issue attached to e, or nil.
func (e *ActionableError) HelpIssue() *Issue {
	if e.Issue == 0 {
		return nil
	}
	return Get(e.Issue)
}

// Details renders the suggestions and, in verbose mode, the cause chain
// with one numbered line per wrapped error. It is empty when there is
// nothing to add to Error, which the caller prints on its own.
func (e *ActionableError) Details(verbose bool) string {
	var msg strings.Builder

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		for depth, err := range causeChain(e.Cause) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth+1, err.Error())
		}
	}
	return msg.String()
}

// causeChain flattens err depth-first, following both single and
// multi-error Unwrap methods.
func causeChain(err error) []error {
	var out []error
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		out = append(out, err)
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		default:
			walk(errors.Unwrap(err))
		}
	}
	walk(err)
	return out
}

func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends one hint; call it repeatedly for several.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build returns nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Issue:       c.issue,
		Cause:       c.cause,
	}
}

// BuildError is Build returning the error interface, with nil kept untyped.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
