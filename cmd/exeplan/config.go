// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/exeplan/exeplan/internal/config"
	"github.com/exeplan/exeplan/internal/issue"
)

// newConfigCommand creates the `exeplan config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	skipConfig := map[string]string{skipConfigAnnotation: "true"}

	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage exeplan configuration",
		Long: `Manage exeplan configuration.

Configuration is stored in:
  - Linux: ~/.config/exeplan/config.cue
  - macOS: ~/Library/Application Support/exeplan/config.cue
  - Windows: %APPDATA%\exeplan\config.cue

A config.cue in the working directory is used when the user file does not
exist. EXEPLAN_<SECTION>_<KEY> environment variables override both, e.g.
EXEPLAN_OUTPUT_ROOT or EXEPLAN_DIAGNOSTICS_NATIVE_ANY_CPU.`,
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			showConfig(cmd, app.sessionFrom(cmd.Context()).cfg)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:         "init",
		Short:       "Create default configuration file",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig("")
			if err != nil {
				return issue.WrapWithOperation(err, "create default configuration")
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:         "path",
		Short:       "Show configuration file path",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, found, err := config.ResolvePath(app.loadOptions())
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", path, SubtitleStyle.Render("(not found, using defaults)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(app.sessionFrom(cmd.Context()).cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, cfg *config.Config) {
	w := cmd.OutOrStdout()
	value := SuccessStyle.Render

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if cfg.Source != "" {
		writeField(w, "", "Config file", cfg.Source)
	} else {
		writeField(w, "", "Config file", SubtitleStyle.Render("(using defaults)"))
	}

	sections := []struct {
		name   string
		fields [][2]string
	}{
		{"output", [][2]string{
			{"root", cfg.Output.Root},
			{"configuration", cfg.Output.Configuration},
			{"publish_dir", cfg.Output.PublishDir},
		}},
		{"runtime_identifier", [][2]string{
			{"implicit_default", cfg.RuntimeIdentifier.ImplicitDefault.String()},
		}},
		{"binding_redirects", [][2]string{
			{"enabled", strconv.FormatBool(cfg.BindingRedirects.Enabled)},
		}},
		{"diagnostics", [][2]string{
			{"native_any_cpu", cfg.Diagnostics.NativeAnyCPU.String()},
		}},
		{"log", [][2]string{
			{"level", cfg.Log.Level.String()},
		}},
		{"ui", [][2]string{
			{"color_scheme", cfg.UI.ColorScheme.String()},
			{"verbose", strconv.FormatBool(cfg.UI.Verbose)},
		}},
	}

	for _, sec := range sections {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", KeyStyle.Render(sec.name))
		for _, f := range sec.fields {
			fmt.Fprintf(w, "  %s: %s\n", f[0], value(orNone(f[1])))
		}
	}
}
