// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for exeplan.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/exeplan/exeplan/pkg/types"
)

// skipConfigAnnotation marks commands that must run even when the
// configuration cannot be loaded.
const skipConfigAnnotation = "exeplan/skip-config"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "exeplan",
		Short: "Plan architecture, output layout and binding redirects of desktop executables",
		Long: TitleStyle.Render("exeplan") + SubtitleStyle.Render(" - build planning for native-interop desktop executables") + `

exeplan reads a project file (exeplan.cue, exeplan.toml or exeplan.yaml)
and decides, per target framework:
  - the architecture the executable is compiled for
  - the build and publish output directories
  - the binding redirects written to <Name>.exe.config

` + SubtitleStyle.Render("Examples:") + `
  exeplan plan                        Plan the project in the current directory
  exeplan plan ./app --publish        Plan publish output
  exeplan arch --rid win10-x64        Resolve an architecture from a runtime identifier
  exeplan outdir --framework net46    Compute an output directory
  exeplan redirects --write           Write <Name>.exe.config files
  exeplan config show                 Show current configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}
			return app.startSession(cmd)
		},
	}

	root.SetOut(app.stdout)
	root.SetErr(app.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/exeplan/config.cue)")

	root.AddCommand(
		newPlanCommand(app),
		newArchCommand(app),
		newOutdirCommand(app),
		newRedirectsCommand(app),
		newReferencesCommand(app),
		newConfigCommand(app),
	)

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the command tree.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(int(types.ExitFailure))
	}

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.renderError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
