// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fortytwo/demeter/internal/dag"
	"github.com/fortytwo/demeter/internal/issue"
	"github.com/fortytwo/demeter/internal/wiring"

	"github.com/spf13/cobra"
)

// newPlanCommand creates `demeter plan`.
func newPlanCommand(app *App, opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the module projects wired into demeter-app",
		Long: `Show the wiring plan for the current selection.

Selecting a module also wires every module it requires, transitively. Those
are marked as implied. Modules are listed so that each one follows the
modules it requires, with the baseline module first.`,
		Args: cobra.NoArgs,
		RunE: app.runE(opts, func(cmd *cobra.Command, _ []string) error {
			f := wiring.Format(strings.ToLower(strings.TrimSpace(format)))
			if err := f.Validate(); err != nil {
				return issue.NewErrorContext().
					WithOperation("encode wiring plan").
					WithIssue(issue.UnknownFormatId).
					WithSuggestion("Pass --format text, json or toml").
					Wrap(err).
					BuildError()
			}

			s, err := app.open(cmd, opts)
			if err != nil {
				return err
			}
			resolved, err := s.selectModules()
			if err != nil {
				return err
			}

			manifest, err := wiring.Plan(resolved)
			if err != nil {
				return planError(err)
			}
			s.logger.Debug("Planned wiring", "modules", len(manifest.Modules), "implied", len(manifest.Implied()))

			if output == "" {
				return manifest.Encode(cmd.OutOrStdout(), f)
			}

			var buf bytes.Buffer
			if err := manifest.Encode(&buf, f); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return issue.WrapWithOperation(err, "write wiring plan")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s plan to %s\n", SuccessStyle.Render("✓"), f, output)
			return nil
		}),
	}

	planCmd.Flags().StringVarP(&format, "format", "f", string(wiring.FormatText), "output format: text, json or toml")
	planCmd.Flags().StringVarP(&output, "output", "o", "", "write the plan to a file instead of stdout")
	_ = planCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(wiring.Formats()))
		for _, f := range wiring.Formats() {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return planCmd
}

func planError(err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("plan module wiring").
		Wrap(err)
	var cycle *dag.CycleError
	if errors.As(err, &cycle) {
		ctx.WithIssue(issue.DependencyCycleId)
	}
	return ctx.BuildError()
}
