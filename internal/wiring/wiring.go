// SPDX-License-Identifier: MPL-2.0

// Package wiring turns a resolved module selection into the ordered list of
// module projects the demeter-app aggregator depends on.
//
// A selected module drags in every module it requires, transitively, so the
// plan can be larger than the selection. Modules pulled in this way are marked
// as implied.
package wiring

import (
	"github.com/fortytwo/demeter/internal/catalog"
	"github.com/fortytwo/demeter/internal/dag"
	"github.com/fortytwo/demeter/internal/selection"
)

type (
	// Entry is one module project wired into the aggregator.
	Entry struct {
		Name     catalog.Name   `json:"name" toml:"name"`
		Project  string         `json:"project" toml:"project"`
		Requires []catalog.Name `json:"requires,omitempty" toml:"requires,omitempty"`
		// Implied is true when the module was not selected but is required
		// by a selected module.
		Implied bool `json:"implied" toml:"implied"`
	}

	// Manifest is the wiring plan for one invocation.
	Manifest struct {
		Property string         `json:"property" toml:"property"`
		Selected []catalog.Name `json:"selected" toml:"selected"`
		// Modules is in wiring order: each module follows everything it requires.
		Modules []Entry `json:"modules" toml:"modules"`
	}
)

// Plan computes the wiring manifest for resolved.
//
// Catalogs reject cyclic requires at construction, so a *dag.CycleError here
// can only come from a catalog built outside catalog.New.
func Plan(resolved *selection.Resolved) (*Manifest, error) {
	cat := resolved.Catalog()

	closure := make(map[catalog.Name]bool, resolved.Len())
	var visit func(catalog.Name)
	visit = func(name catalog.Name) {
		if closure[name] {
			return
		}
		closure[name] = true
		m, _ := cat.Module(name)
		for _, req := range m.Requires {
			visit(req)
		}
	}
	for _, name := range resolved.Names() {
		visit(name)
	}

	// Nodes are added in catalog order so independent modules keep it.
	g := dag.New[catalog.Name]()
	members := cat.Order(closure)
	for _, name := range members {
		g.AddNode(name)
	}
	for _, name := range members {
		if name != cat.Baseline() {
			g.AddEdge(cat.Baseline(), name)
		}
		m, _ := cat.Module(name)
		for _, req := range m.Requires {
			g.AddEdge(req, name)
		}
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Property: selection.Property,
		Selected: resolved.Names(),
		Modules:  make([]Entry, 0, len(order)),
	}
	for _, name := range order {
		m, _ := cat.Module(name)
		manifest.Modules = append(manifest.Modules, Entry{
			Name:     name,
			Project:  cat.ProjectPath(name),
			Requires: m.Requires,
			Implied:  !resolved.Contains(name),
		})
	}
	return manifest, nil
}

// Implied returns the names of modules wired only because something requires them.
func (m *Manifest) Implied() []catalog.Name {
	var out []catalog.Name
	for _, e := range m.Modules {
		if e.Implied {
			out = append(out, e.Name)
		}
	}
	return out
}

// Names returns every wired module in wiring order.
func (m *Manifest) Names() []catalog.Name {
	out := make([]catalog.Name, len(m.Modules))
	for i, e := range m.Modules {
		out[i] = e.Name
	}
	return out
}
