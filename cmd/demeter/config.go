// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fortytwo/demeter/internal/config"
	"github.com/fortytwo/demeter/internal/issue"
	"github.com/fortytwo/demeter/internal/selection"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `demeter config` command tree.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage demeter configuration",
		Long: `Manage demeter configuration.

Configuration is stored in:
  - Linux: ~/.config/demeter/config.cue
  - macOS: ~/Library/Application Support/demeter/config.cue
  - Windows: %APPDATA%\demeter\config.cue

A config.cue in the working directory is used when the file above does not
exist. DEMETER_* environment variables override file values, for example
DEMETER_MODULES or DEMETER_LOG_LEVEL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: app.runE(opts, func(cmd *cobra.Command, _ []string) error {
			loaded, err := app.loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			showConfig(cmd.OutOrStdout(), loaded)
			return nil
		}),
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: app.runE(opts, func(cmd *cobra.Command, _ []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config directory: %s\n", cfgDir)
			fmt.Fprintf(out, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		}),
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Long: `Create the default configuration file.

An existing file is left alone unless --force is given, in which case it is
replaced with the defaults.`,
		Args: cobra.NoArgs,
		RunE: app.runE(opts, func(cmd *cobra.Command, _ []string) error {
			if force {
				path, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				if err := config.Save(config.DefaultConfig()); err != nil {
					return issue.WrapWithOperation(err, "write default configuration")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote default configuration to %s\n", SuccessStyle.Render("✓"), path)
				return nil
			}

			path, created, err := config.CreateDefaultConfig()
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		}),
	}
	initCmd.Flags().BoolVar(&force, "force", false, "replace an existing config file with the defaults")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: app.runE(opts, func(cmd *cobra.Command, _ []string) error {
			loaded, err := app.loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(loaded.Config))
			return nil
		}),
	})

	return cfgCmd
}

func showConfig(w io.Writer, loaded *config.Loaded) {
	cfg := loaded.Config
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if loaded.Path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), loaded.Path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	modules := valueStyle.Render(cfg.Modules)
	if cfg.Modules == "" {
		modules = SubtitleStyle.Render("(not set, " + selection.All + ")")
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("modules"), modules)

	catalogFile := valueStyle.Render(string(cfg.CatalogFile))
	if cfg.CatalogFile == "" {
		catalogFile = SubtitleStyle.Render("(built-in)")
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("catalog_file"), catalogFile)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(w, "  level: %s\n", valueStyle.Render(string(cfg.Log.Level)))
}
