// SPDX-License-Identifier: MPL-2.0

package wiring

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/fortytwo/demeter/internal/catalog"
	"github.com/fortytwo/demeter/internal/selection"

	"github.com/pelletier/go-toml/v2"
)

func mustPlan(t *testing.T, cat *catalog.Catalog, raw string) *Manifest {
	t.Helper()
	resolved, err := selection.Resolve(cat, raw)
	if err != nil {
		t.Fatalf("selection.Resolve(%q) error = %v", raw, err)
	}
	m, err := Plan(resolved)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	return m
}

func TestPlan_TransitiveClosure(t *testing.T) {
	t.Parallel()

	m := mustPlan(t, catalog.Default(), "ventas")

	wantOrder := []catalog.Name{
		"common", "productos", "usuarios", "empaquetado",
		"ubicaciones", "fotos", "inventario", "ventas",
	}
	if !slices.Equal(m.Names(), wantOrder) {
		t.Errorf("Names() = %v, want %v", m.Names(), wantOrder)
	}

	wantImplied := []catalog.Name{"productos", "usuarios", "empaquetado", "ubicaciones", "fotos", "inventario"}
	if !slices.Equal(m.Implied(), wantImplied) {
		t.Errorf("Implied() = %v, want %v", m.Implied(), wantImplied)
	}
	if !slices.Equal(m.Selected, []catalog.Name{"common", "ventas"}) {
		t.Errorf("Selected = %v", m.Selected)
	}
	if m.Property != "demeter.modules" {
		t.Errorf("Property = %q", m.Property)
	}
	if m.Modules[len(m.Modules)-1].Project != ":demeter-ventas" {
		t.Errorf("last project = %q", m.Modules[len(m.Modules)-1].Project)
	}
}

func TestPlan_NoRequirements(t *testing.T) {
	t.Parallel()

	m := mustPlan(t, catalog.Default(), "chatbot")
	if !slices.Equal(m.Names(), []catalog.Name{"common", "chatbot"}) {
		t.Errorf("Names() = %v", m.Names())
	}
	if len(m.Implied()) != 0 {
		t.Errorf("Implied() = %v, want none", m.Implied())
	}
}

func TestPlan_AllRespectsRequires(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()
	m := mustPlan(t, cat, "all")
	if len(m.Modules) != cat.Len() {
		t.Fatalf("got %d modules, want %d", len(m.Modules), cat.Len())
	}
	if m.Modules[0].Name != cat.Baseline() {
		t.Errorf("baseline must be wired first, got %v", m.Names())
	}

	pos := make(map[catalog.Name]int)
	for i, e := range m.Modules {
		pos[e.Name] = i
		if e.Implied {
			t.Errorf("%s marked implied although everything was selected", e.Name)
		}
	}
	for _, e := range m.Modules {
		for _, req := range e.Requires {
			if pos[req] >= pos[e.Name] {
				t.Errorf("%s wired before its requirement %s", e.Name, req)
			}
		}
	}
}

func TestPlan_BaselineFirstEvenWhenDeclaredLast(t *testing.T) {
	t.Parallel()

	cat, err := catalog.New("core", []catalog.Module{{Name: "b"}, {Name: "a"}, {Name: "core"}})
	if err != nil {
		t.Fatal(err)
	}
	m := mustPlan(t, cat, "all")
	if !slices.Equal(m.Names(), []catalog.Name{"core", "b", "a"}) {
		t.Errorf("Names() = %v, want [core b a]", m.Names())
	}
}

func TestFormat_Validate(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		if err := f.Validate(); err != nil {
			t.Errorf("%s.Validate() error = %v", f, err)
		}
	}

	err := Format("yaml").Validate()
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "text, json, toml") {
		t.Errorf("error should list valid formats: %v", err)
	}
}

func TestManifest_EncodeText(t *testing.T) {
	t.Parallel()

	m := mustPlan(t, catalog.Default(), "costos")
	var buf bytes.Buffer
	if err := m.Encode(&buf, FormatText); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `# demeter.modules=common,costos
implementation(project(":demeter-common"))
implementation(project(":demeter-productos")) // implied
implementation(project(":demeter-costos"))
`
	if buf.String() != want {
		t.Errorf("Encode(text) =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestManifest_EncodeJSON(t *testing.T) {
	t.Parallel()

	m := mustPlan(t, catalog.Default(), "costos")
	var buf bytes.Buffer
	if err := m.Encode(&buf, FormatJSON); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var decoded Manifest
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if !slices.Equal(decoded.Names(), m.Names()) {
		t.Errorf("decoded names = %v, want %v", decoded.Names(), m.Names())
	}
	if !strings.Contains(buf.String(), `"implied": true`) {
		t.Errorf("JSON should flag implied modules:\n%s", buf.String())
	}
}

func TestManifest_EncodeTOML(t *testing.T) {
	t.Parallel()

	m := mustPlan(t, catalog.Default(), "costos")
	var buf bytes.Buffer
	if err := m.Encode(&buf, FormatTOML); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"demeter.modules", "[[modules]]", ":demeter-productos"} {
		if !strings.Contains(out, want) {
			t.Errorf("TOML output missing %q:\n%s", want, out)
		}
	}

	var decoded Manifest
	if err := toml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid TOML: %v", err)
	}
	if !slices.Equal(decoded.Implied(), []catalog.Name{"productos"}) {
		t.Errorf("decoded implied = %v", decoded.Implied())
	}
}

func TestManifest_EncodeUnknownFormat(t *testing.T) {
	t.Parallel()

	m := mustPlan(t, catalog.Default(), "all")
	var buf bytes.Buffer
	if err := m.Encode(&buf, "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an unknown format")
	}
}
