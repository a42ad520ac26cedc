// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fortytwo/demeter/internal/issue"
	"github.com/fortytwo/demeter/internal/wiring"
)

func TestPlan_Text(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := runDemeter(t, nil, "plan", "--modules", "costos")
	if err != nil {
		t.Fatalf("plan error = %v\nstderr: %s", err, stderr)
	}
	want := `# demeter.modules=common,costos
implementation(project(":demeter-common"))
implementation(project(":demeter-productos")) // implied
implementation(project(":demeter-costos"))
`
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
	if !strings.Contains(stderr, "Active modules") {
		t.Errorf("plan should log the active modules line: %q", stderr)
	}
}

func TestPlan_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := runDemeter(t, nil, "plan", "--modules", "ventas", "--format", "JSON")
	if err != nil {
		t.Fatalf("plan error = %v", err)
	}
	var m wiring.Manifest
	if err := json.Unmarshal([]byte(stdout), &m); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(m.Modules) != 8 || m.Modules[len(m.Modules)-1].Name != "ventas" {
		t.Errorf("unexpected plan: %+v", m.Names())
	}
}

func TestPlan_OutputFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.toml")
	stdout, _, err := runDemeter(t, nil, "plan", "--modules", "chatbot", "-f", "toml", "-o", path)
	if err != nil {
		t.Fatalf("plan error = %v", err)
	}
	if !strings.Contains(stdout, "Wrote toml plan to "+path) {
		t.Errorf("stdout = %q", stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), ":demeter-chatbot") {
		t.Errorf("plan file missing chatbot:\n%s", data)
	}
}

func TestPlan_UnknownFormat(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := runDemeter(t, nil, "plan", "--format", "yaml")
	if !errors.Is(err, wiring.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue != issue.UnknownFormatId {
		t.Errorf("expected UnknownFormatId, got %v", err)
	}
	if exitCodeFor(err) != ExitFailure {
		t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitFailure)
	}
	if stdout != "" || strings.Contains(stderr, "Active modules") {
		t.Errorf("format is checked before selection; stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestPlan_SelectionError(t *testing.T) {
	t.Parallel()

	_, _, err := runDemeter(t, nil, "plan", "--modules", "ventas,bogus")
	if exitCodeFor(err) != ExitConfiguration {
		t.Errorf("exit code = %d, want %d (%v)", exitCodeFor(err), ExitConfiguration, err)
	}
}
