// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	_ "embed"
	"fmt"

	"github.com/fortytwo/demeter/internal/cueutil"
)

//go:embed catalog_schema.cue
var catalogSchema []byte

type (
	fileModule struct {
		Name        string   `json:"name"`
		Description string   `json:"description,omitempty"`
		Requires    []string `json:"requires,omitempty"`
	}

	fileCatalog struct {
		Baseline      string       `json:"baseline"`
		ProjectPrefix string       `json:"project_prefix,omitempty"`
		Modules       []fileModule `json:"modules"`
	}
)

// LoadFile reads a catalog from a CUE file such as:
//
//	baseline: "common"
//	modules: [
//		{name: "common"},
//		{name: "productos", description: "Products"},
//		{name: "costos", requires: ["productos"]},
//	]
func LoadFile(path string) (*Catalog, error) {
	result, err := cueutil.ParseFile[fileCatalog](catalogSchema, path, "#Catalog")
	if err != nil {
		return nil, err
	}
	return fromFile(result.Value, path)
}

// Parse is LoadFile for in-memory data; filename is used in error messages.
func Parse(data []byte, filename string) (*Catalog, error) {
	result, err := cueutil.ParseAndDecode[fileCatalog](catalogSchema, data, "#Catalog", cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	return fromFile(result.Value, filename)
}

func fromFile(fc *fileCatalog, source string) (*Catalog, error) {
	modules := make([]Module, 0, len(fc.Modules))
	for _, fm := range fc.Modules {
		m := Module{Name: Name(fm.Name), Description: fm.Description}
		for _, r := range fm.Requires {
			m.Requires = append(m.Requires, Name(r))
		}
		modules = append(modules, m)
	}

	var opts []Option
	if fc.ProjectPrefix != "" {
		opts = append(opts, WithProjectPrefix(fc.ProjectPrefix))
	}

	c, err := New(Name(fc.Baseline), modules, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return c, nil
}
