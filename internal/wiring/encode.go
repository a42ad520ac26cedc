// SPDX-License-Identifier: MPL-2.0

package wiring

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fortytwo/demeter/internal/catalog"

	"github.com/pelletier/go-toml/v2"
)

const (
	// FormatText renders Gradle-style dependency lines.
	FormatText Format = "text"
	// FormatJSON renders the manifest as indented JSON.
	FormatJSON Format = "json"
	// FormatTOML renders the manifest as TOML.
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is the sentinel error wrapped by UnknownFormatError.
var ErrUnknownFormat = errors.New("unknown manifest format")

type (
	// Format selects a manifest encoding.
	Format string

	// UnknownFormatError is returned for a Format outside Formats().
	UnknownFormatError struct {
		Value Format
	}
)

// Error implements the error interface.
func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown manifest format %q (valid: %s)", e.Value, strings.Join(formatNames(), ", "))
}

// Unwrap returns ErrUnknownFormat for errors.Is() compatibility.
func (e *UnknownFormatError) Unwrap() error { return ErrUnknownFormat }

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatTOML}
}

func formatNames() []string {
	var names []string
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return names
}

// Validate returns an *UnknownFormatError for unsupported formats.
func (f Format) Validate() error {
	switch f {
	case FormatText, FormatJSON, FormatTOML:
		return nil
	default:
		return &UnknownFormatError{Value: f}
	}
}

// Encode writes m to w in the requested format.
func (m *Manifest) Encode(w io.Writer, format Format) error {
	if err := format.Validate(); err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(m)
	default:
		return m.encodeText(w)
	}
}

func (m *Manifest) encodeText(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s=%s\n", m.Property, catalog.JoinNames(m.Selected, ","))
	for _, e := range m.Modules {
		fmt.Fprintf(&sb, "implementation(project(%q))", e.Project)
		if e.Implied {
			sb.WriteString(" // implied")
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
