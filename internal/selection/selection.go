// SPDX-License-Identifier: MPL-2.0

// Package selection resolves the demeter.modules property against a module
// catalog.
//
// The property is either absent, the sentinel "all" (any case), or a
// comma-separated list of module names. Resolution always yields a non-empty
// subset of the catalog that contains the baseline module.
package selection

import (
	"strings"

	"github.com/fortytwo/demeter/internal/catalog"

	"github.com/charmbracelet/log"
)

const (
	// Property is the name of the selection property as operators know it.
	Property = "demeter.modules"
	// All selects every catalog module.
	All = "all"
)

type (
	// Resolved is the final, immutable set of modules chosen for one invocation.
	Resolved struct {
		catalog   *catalog.Catalog
		set       map[catalog.Name]bool
		requested []catalog.Name
		all       bool
	}

	// Selector resolves selections against a fixed catalog and reports the
	// outcome through Logger.
	Selector struct {
		Catalog *catalog.Catalog
		// Logger receives the "Active modules" diagnostic line. Nil disables it.
		Logger *log.Logger
	}
)

// Resolve computes the modules selected by raw.
//
// An empty (or whitespace-only) raw value means the property was not given
// and selects the whole catalog, as does "all". Otherwise raw is split on
// commas; tokens are trimmed, lowercased, deduplicated, and empty tokens are
// dropped. The baseline module is always added.
//
// Resolve returns an *EmptySelectionError when raw holds no tokens at all
// (e.g. ",,") and an *UnknownModulesError naming every token missing from
// the catalog.
func Resolve(cat *catalog.Catalog, raw string) (*Resolved, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, All) {
		set := make(map[catalog.Name]bool, cat.Len())
		for _, name := range cat.Names() {
			set[name] = true
		}
		return &Resolved{catalog: cat, set: set, all: true}, nil
	}

	requested := tokenize(trimmed)
	if len(requested) == 0 {
		return nil, &EmptySelectionError{Property: Property, Raw: raw}
	}

	var unknown []string
	for _, name := range requested {
		if !cat.Contains(name) {
			unknown = append(unknown, string(name))
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownModulesError{Property: Property, Unknown: unknown, Valid: cat.Names()}
	}

	set := make(map[catalog.Name]bool, len(requested)+1)
	for _, name := range requested {
		set[name] = true
	}
	set[cat.Baseline()] = true

	return &Resolved{catalog: cat, set: set, requested: requested}, nil
}

// tokenize splits raw on commas and normalizes each token, keeping the first
// occurrence order.
func tokenize(raw string) []catalog.Name {
	var out []catalog.Name
	seen := make(map[catalog.Name]bool)
	for _, part := range strings.Split(raw, ",") {
		token := catalog.Name(strings.ToLower(strings.TrimSpace(part)))
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}

// Select resolves raw and logs the active modules in catalog order.
func (s *Selector) Select(raw string) (*Resolved, error) {
	resolved, err := Resolve(s.Catalog, raw)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("Active modules", "modules", resolved.String())
	}
	return resolved, nil
}

// Names returns the selected modules in catalog order.
func (r *Resolved) Names() []catalog.Name {
	return r.catalog.Order(r.set)
}

// Contains reports whether name was selected.
func (r *Resolved) Contains(name catalog.Name) bool {
	return r.set[name]
}

// Len returns the number of selected modules.
func (r *Resolved) Len() int {
	return len(r.set)
}

// All reports whether the whole catalog was selected because the property
// was absent, empty or "all".
func (r *Resolved) All() bool {
	return r.all
}

// Requested returns the normalized tokens the operator asked for, in the
// order given. It is empty when All is true.
func (r *Resolved) Requested() []catalog.Name {
	out := make([]catalog.Name, len(r.requested))
	copy(out, r.requested)
	return out
}

// Catalog returns the catalog the selection was resolved against.
func (r *Resolved) Catalog() *catalog.Catalog {
	return r.catalog
}

// String joins the selected names with ", " in catalog order.
func (r *Resolved) String() string {
	return catalog.JoinNames(r.Names(), ", ")
}

// CSV joins the selected names with "," in catalog order, the form accepted
// back by the demeter.modules property.
func (r *Resolved) CSV() string {
	return catalog.JoinNames(r.Names(), ",")
}
