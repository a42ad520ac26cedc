// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/fortytwo/demeter/internal/dag"
)

// DefaultProjectPrefix is prepended to a module name to form its build project path.
const DefaultProjectPrefix = ":demeter-"

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid module name")
	// ErrInvalidCatalog is the sentinel error wrapped by InvalidCatalogError.
	ErrInvalidCatalog = errors.New("invalid module catalog")

	namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

type (
	// Name identifies a module (e.g. "productos"). Names are lowercase.
	Name string

	// InvalidNameError is returned when a Name does not match [a-z][a-z0-9-]*.
	InvalidNameError struct {
		Value Name
	}

	// InvalidCatalogError collects every problem found while building a Catalog.
	InvalidCatalogError struct {
		Problems []error
	}

	// Module describes one selectable module.
	Module struct {
		Name        Name
		Description string
		// Requires lists catalog modules this module imports. The baseline
		// is implied for every module and may be omitted.
		Requires []Name
	}

	// Catalog is the ordered, immutable set of known modules.
	Catalog struct {
		baseline      Name
		projectPrefix string
		modules       []Module
		index         map[Name]int
	}

	// Option customizes a Catalog under construction.
	Option func(*Catalog)
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid module name %q (must match %s)", e.Value, namePattern)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface.
func (e *InvalidCatalogError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return "invalid module catalog: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidCatalog followed by the individual problems.
func (e *InvalidCatalogError) Unwrap() []error {
	return append([]error{ErrInvalidCatalog}, e.Problems...)
}

// String returns the name as a plain string.
func (n Name) String() string { return string(n) }

// Validate returns an *InvalidNameError when n is not a valid module name.
func (n Name) Validate() error {
	if !namePattern.MatchString(string(n)) {
		return &InvalidNameError{Value: n}
	}
	return nil
}

// WithProjectPrefix overrides DefaultProjectPrefix.
func WithProjectPrefix(prefix string) Option {
	return func(c *Catalog) { c.projectPrefix = prefix }
}

// New builds a Catalog from modules in the given order.
//
// It fails when a name is invalid or duplicated, when baseline is not among
// the modules, when a module requires an unknown module or itself, or when
// the requires graph has a cycle.
func New(baseline Name, modules []Module, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		baseline:      baseline,
		projectPrefix: DefaultProjectPrefix,
		index:         make(map[Name]int, len(modules)),
	}
	for _, opt := range opts {
		opt(c)
	}

	var problems []error
	for _, m := range modules {
		if err := m.Name.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		if _, dup := c.index[m.Name]; dup {
			problems = append(problems, fmt.Errorf("duplicate module %q", m.Name))
			continue
		}
		c.index[m.Name] = len(c.modules)
		m.Requires = slices.Clone(m.Requires)
		c.modules = append(c.modules, m)
	}

	if len(c.modules) == 0 && len(problems) == 0 {
		problems = append(problems, errors.New("catalog has no modules"))
	}
	if _, ok := c.index[baseline]; !ok && len(c.modules) > 0 {
		problems = append(problems, fmt.Errorf("baseline module %q is not in the catalog", baseline))
	}

	g := dag.New[Name]()
	for _, m := range c.modules {
		g.AddNode(m.Name)
		for _, req := range m.Requires {
			switch {
			case req == m.Name:
				problems = append(problems, fmt.Errorf("module %q requires itself", m.Name))
			case !c.Contains(req):
				problems = append(problems, fmt.Errorf("module %q requires unknown module %q", m.Name, req))
			default:
				g.AddEdge(req, m.Name)
			}
		}
	}
	if _, err := g.TopologicalSort(); err != nil {
		problems = append(problems, err)
	}

	if len(problems) > 0 {
		return nil, &InvalidCatalogError{Problems: problems}
	}
	return c, nil
}

// Baseline returns the module that is always selected.
func (c *Catalog) Baseline() Name { return c.baseline }

// Len returns the number of modules.
func (c *Catalog) Len() int { return len(c.modules) }

// Names returns all module names in catalog order.
func (c *Catalog) Names() []Name {
	names := make([]Name, len(c.modules))
	for i, m := range c.modules {
		names[i] = m.Name
	}
	return names
}

// Modules returns a copy of every module in catalog order.
func (c *Catalog) Modules() []Module {
	out := make([]Module, len(c.modules))
	for i, m := range c.modules {
		m.Requires = slices.Clone(m.Requires)
		out[i] = m
	}
	return out
}

// Contains reports whether name is a catalog module.
func (c *Catalog) Contains(name Name) bool {
	_, ok := c.index[name]
	return ok
}

// Module returns the module called name.
func (c *Catalog) Module(name Name) (Module, bool) {
	i, ok := c.index[name]
	if !ok {
		return Module{}, false
	}
	m := c.modules[i]
	m.Requires = slices.Clone(m.Requires)
	return m, true
}

// ProjectPrefix returns the prefix used by ProjectPath.
func (c *Catalog) ProjectPrefix() string { return c.projectPrefix }

// ProjectPath returns the build project path of a module, e.g. ":demeter-ventas".
func (c *Catalog) ProjectPath(name Name) string {
	return c.projectPrefix + string(name)
}

// Order returns the members of set that are catalog modules, in catalog order.
func (c *Catalog) Order(set map[Name]bool) []Name {
	out := make([]Name, 0, len(set))
	for _, m := range c.modules {
		if set[m.Name] {
			out = append(out, m.Name)
		}
	}
	return out
}

// JoinNames joins names with sep.
func JoinNames(names []Name, sep string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, sep)
}
