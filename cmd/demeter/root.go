// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds a fresh command tree bound to app.
func newRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "demeter",
		Short: "Choose which demeter modules the application is built with",
		Long: TitleStyle.Render("demeter") + SubtitleStyle.Render(" - module selection for demeter-app") + `

demeter resolves the demeter.modules property against the module catalog
and tells the build which module projects to wire into demeter-app.

The property is "all" (the default when it is not set) or a comma-separated
list of module names. Names are case-insensitive and the baseline module
(common) is always included.

` + SubtitleStyle.Render("Setting the property:") + `
  --modules ventas,productos     flag, highest priority
  DEMETER_MODULES=ventas         environment
  modules: "ventas"              config.cue

` + SubtitleStyle.Render("Examples:") + `
  demeter modules                   Print demeter.modules=<resolved list>
  demeter modules list              Show the catalog
  demeter plan --format json        Show the wiring plan with required modules
  demeter config show               Show current configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/demeter/config.cue)")
	rootCmd.PersistentFlags().StringVar(&opts.modules, "modules", "", `value of demeter.modules: "all" or a comma-separated module list`)
	rootCmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "CUE module catalog replacing the built-in one")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newModulesCommand(app, opts))
	rootCmd.AddCommand(newPlanCommand(app, opts))
	rootCmd.AddCommand(newConfigCommand(app, opts))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// execute runs the command tree with args without fang's styling. Tests use
// it to capture plain output.
func (a *App) execute(ctx context.Context, args []string) error {
	rootCmd := newRootCommand(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)
	return rootCmd.ExecuteContext(ctx)
}

// Run executes demeter with os.Args and returns the process exit code.
func Run() int {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		return ExitFailure
	}

	rootCmd := newRootCommand(app)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	err = fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	return exitCodeFor(err)
}

// Execute is called by main.main.
func Execute() {
	os.Exit(Run())
}
