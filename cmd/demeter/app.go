// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fortytwo/demeter/internal/catalog"
	"github.com/fortytwo/demeter/internal/config"
	"github.com/fortytwo/demeter/internal/dag"
	"github.com/fortytwo/demeter/internal/issue"
	"github.com/fortytwo/demeter/internal/selection"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// LoggerPrefix tags every diagnostic line demeter writes to stderr.
const LoggerPrefix = "demeter-app"

type (
	// App is the composition root for the CLI layer. Command handlers receive
	// it and reach configuration, catalogs and output through it.
	App struct {
		Config   config.Provider
		Catalogs CatalogSource
		stdout   io.Writer
		stderr   io.Writer
		// renderHelp renders an issue help page with a glamour style name.
		renderHelp func(help *issue.Issue, style string) (string, error)
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   config.Provider
		Catalogs CatalogSource
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// CatalogSource loads the module catalog. An empty path selects the
	// built-in catalog.
	CatalogSource interface {
		Load(ctx context.Context, path string) (*catalog.Catalog, error)
	}

	fileCatalogSource struct{}

	// rootOptions holds the persistent flag values of one command tree.
	rootOptions struct {
		configPath  string
		modules     string
		catalogPath string
		verbose     bool

		// Filled in while the command runs; error help reads them.
		colorScheme config.ColorScheme
		logger      *log.Logger
	}

	// session is the state shared by the commands that need a catalog:
	// the loaded configuration, the catalog and the diagnostic logger.
	session struct {
		config     *config.Config
		configPath string
		catalog    *catalog.Catalog
		logger     *log.Logger
		// raw is the demeter.modules value after flag/env/file precedence.
		raw string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Catalogs == nil {
		deps.Catalogs = fileCatalogSource{}
	}

	return &App{
		Config:   deps.Config,
		Catalogs: deps.Catalogs,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		renderHelp: func(help *issue.Issue, style string) (string, error) {
			return help.Render(style)
		},
	}, nil
}

func (fileCatalogSource) Load(ctx context.Context, path string) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

// loadConfig loads the configuration honoring --config, folds ui.verbose
// into the verbose flag and records ui.color_scheme for error help.
func (a *App) loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Loaded, error) {
	loaded, err := a.Config.Load(commandContext(cmd), config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		return nil, err
	}
	opts.verbose = opts.verbose || loaded.Config.UI.Verbose
	opts.colorScheme = loaded.Config.UI.ColorScheme
	return loaded, nil
}

// open loads configuration and catalog for a command.
//
// demeter.modules precedence: --modules (when given, even empty), then
// DEMETER_MODULES, then the config file, then absent.
func (a *App) open(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	loaded, err := a.loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config

	level := cfg.Log.Level.Level()
	if opts.verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: LoggerPrefix, Level: level})
	opts.logger = logger

	if loaded.Path != "" {
		logger.Debug("Loaded configuration", "path", loaded.Path)
	}

	catalogPath := opts.catalogPath
	if catalogPath == "" {
		catalogPath = string(cfg.CatalogFile)
	}
	cat, err := a.Catalogs.Load(commandContext(cmd), catalogPath)
	if err != nil {
		return nil, catalogError(catalogPath, err)
	}
	if catalogPath != "" {
		logger.Debug("Loaded catalog", "path", catalogPath, "modules", cat.Len())
	}

	raw := cfg.Modules
	if cmd.Flags().Changed("modules") {
		raw = opts.modules
	}

	return &session{
		config:     cfg,
		configPath: loaded.Path,
		catalog:    cat,
		logger:     logger,
		raw:        raw,
	}, nil
}

// selectModules resolves the session's demeter.modules value and logs the
// active modules line.
func (s *session) selectModules() (*selection.Resolved, error) {
	s.logger.Debug("Resolving module selection", "property", selection.Property, "value", s.raw)
	selector := &selection.Selector{Catalog: s.catalog, Logger: s.logger}
	resolved, err := selector.Select(s.raw)
	if err != nil {
		return nil, selectionError(err)
	}
	return resolved, nil
}

// runE wraps a handler so failures print their suggestions, and in verbose
// mode the cause chain and the issue help page, before the error message
// itself is reported by the caller of Execute.
func (a *App) runE(opts *rootOptions, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		a.renderErrorHelp(err, opts)
		return &ExitError{Code: exitCodeFor(err), Err: err}
	}
}

// renderErrorHelp prints the details of an ActionableError. Verbose runs
// also get the issue help page in the configured color scheme, or "auto"
// when the configuration never loaded.
func (a *App) renderErrorHelp(err error, opts *rootOptions) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	if details := strings.TrimLeft(ae.Details(opts.verbose), "\n"); details != "" {
		fmt.Fprintln(a.stderr, details)
	}
	if !opts.verbose {
		return
	}
	help := ae.HelpIssue()
	if help == nil {
		return
	}

	scheme := opts.colorScheme
	if scheme == "" {
		scheme = config.ColorSchemeAuto
	}
	rendered, renderErr := a.renderHelp(help, string(scheme))
	if renderErr != nil {
		a.errorLogger(opts).Warn("Failed to render issue help", "issue", ae.Issue, "style", scheme, "error", renderErr)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// errorLogger returns the command's logger, or a demeter-app logger on
// stderr when the command failed before building one.
func (a *App) errorLogger(opts *rootOptions) *log.Logger {
	if opts.logger != nil {
		return opts.logger
	}
	return log.NewWithOptions(a.stderr, log.Options{Prefix: LoggerPrefix})
}

func selectionError(err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("resolve module selection").
		Wrap(err)

	var unknown *selection.UnknownModulesError
	switch {
	case errors.As(err, &unknown):
		ctx.WithIssue(issue.UnknownModuleId).
			WithSuggestion("Run 'demeter modules list' to see the catalog")
	case errors.Is(err, selection.ErrEmptySelection):
		ctx.WithIssue(issue.EmptySelectionId).
			WithSuggestion(fmt.Sprintf("Use %q or a comma-separated list of module names", selection.All))
	}
	return ctx.BuildError()
}

func catalogError(path string, err error) error {
	resource := path
	if resource == "" {
		resource = "built-in catalog"
	}
	ctx := issue.NewErrorContext().
		WithOperation("load module catalog").
		WithResource(resource).
		Wrap(err)

	var cycle *dag.CycleError
	if errors.As(err, &cycle) {
		return ctx.WithIssue(issue.DependencyCycleId).
			WithSuggestion("Remove one of the requires entries on the cycle").
			BuildError()
	}
	return ctx.WithIssue(issue.CatalogLoadFailedId).
		WithSuggestion("Check the catalog against the rules in 'demeter modules --help'").
		BuildError()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
