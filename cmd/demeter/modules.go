// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/fortytwo/demeter/internal/catalog"
	"github.com/fortytwo/demeter/internal/selection"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// newModulesCommand creates `demeter modules` and its list subcommand.
func newModulesCommand(app *App, opts *rootOptions) *cobra.Command {
	modulesCmd := &cobra.Command{
		Use:   "modules",
		Short: "Print the resolved demeter.modules property",
		Long: `Resolve demeter.modules and print it as a single property line:

  demeter.modules=common,productos,ventas

The list is in catalog order and always contains the baseline module. A
diagnostic line naming the active modules is written to stderr.

` + SubtitleStyle.Render("Catalog rules (for --catalog files):") + `
  - module names match [a-z][a-z0-9-]* and are unique
  - the baseline module (default "common") must be listed
  - requires entries name other modules and must not form a cycle`,
		Args: cobra.NoArgs,
		RunE: app.runE(opts, func(cmd *cobra.Command, _ []string) error {
			s, err := app.open(cmd, opts)
			if err != nil {
				return err
			}
			resolved, err := s.selectModules()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", selection.Property, resolved.CSV())
			return nil
		}),
	}

	modulesCmd.AddCommand(newModulesListCommand(app, opts))
	return modulesCmd
}

func newModulesListCommand(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the module catalog and mark the active modules",
		Args:  cobra.NoArgs,
		RunE: app.runE(opts, func(cmd *cobra.Command, _ []string) error {
			s, err := app.open(cmd, opts)
			if err != nil {
				return err
			}
			resolved, err := selection.Resolve(s.catalog, s.raw)
			if err != nil {
				return selectionError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCatalogTable(s.catalog, resolved))
			return nil
		}),
	}
}

func renderCatalogTable(cat *catalog.Catalog, resolved *selection.Resolved) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		Headers("MODULE", "PROJECT", "ACTIVE", "REQUIRES", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})

	for _, m := range cat.Modules() {
		active := ""
		switch {
		case m.Name == cat.Baseline():
			active = "baseline"
		case resolved.Contains(m.Name):
			active = "yes"
		}
		t.Row(
			string(m.Name),
			cat.ProjectPath(m.Name),
			active,
			catalog.JoinNames(m.Requires, ", "),
			m.Description,
		)
	}
	return t.Render()
}
