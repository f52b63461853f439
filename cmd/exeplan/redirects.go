// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exeplan/exeplan/internal/engine"
	"github.com/exeplan/exeplan/internal/issue"
	"github.com/exeplan/exeplan/pkg/framework"
	"github.com/exeplan/exeplan/pkg/layout"
	"github.com/exeplan/exeplan/pkg/redirect"
)

type redirectsOptions struct {
	framework string
	write     bool
	xml       bool
}

func newRedirectsCommand(app *App) *cobra.Command {
	opts := &redirectsOptions{}

	cmd := &cobra.Command{
		Use:   "redirects [project]",
		Short: "Plan the binding redirects of a project",
		Long: `Plan the assembly binding redirects of a project's build output.

Every assembly found in the reference closure with more than one version is
redirected to its highest version. A conflict-free closure needs no
redirects, and only .NET Framework executables read <Name>.exe.config.`,
		Example: `  exeplan redirects
  exeplan redirects ./src/App --framework net452 --xml
  exeplan redirects --write`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRedirects(cmd, app, opts, projectArg(args))
		},
	}

	cmd.Flags().StringVarP(&opts.framework, "framework", "f", "", "plan a single target framework")
	cmd.Flags().BoolVar(&opts.write, "write", false, "write <Name>.exe.config files into the build output directories")
	cmd.Flags().BoolVar(&opts.xml, "xml", false, "print the application configuration documents")

	return cmd
}

func runRedirects(cmd *cobra.Command, app *App, opts *redirectsOptions, path string) error {
	ctx := cmd.Context()
	s := app.sessionFrom(ctx)

	p, err := app.loadProject(path)
	if err != nil {
		return err
	}

	eng, err := engine.New(s.cfg, engine.WithLogger(s.logger))
	if err != nil {
		return err
	}

	plans, err := eng.PlanProject(ctx, p, layout.OperationBuild, framework.Moniker(opts.framework))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, plan := range plans {
		if opts.xml {
			if !plan.NeedsAppConfig() {
				continue
			}
			doc, err := redirect.RenderAppConfig(plan.Redirects)
			if err != nil {
				return issue.WrapWithContext(err, "render application configuration", plan.AppConfigName())
			}
			if len(plans) > 1 {
				fmt.Fprintf(w, "<!-- %s -->\n", plan.Framework)
			}
			fmt.Fprint(w, string(doc))
			continue
		}

		switch {
		case !plan.Configuration.NeedsAppConfig():
			fmt.Fprintf(w, "%s: %s\n", plan.Framework, SubtitleStyle.Render("no application configuration"))
		case len(plan.Redirects) == 0:
			fmt.Fprintf(w, "%s: %s\n", plan.Framework, SubtitleStyle.Render("no conflicts"))
		default:
			for _, r := range plan.Redirects {
				fmt.Fprintf(w, "%s: %s\n", plan.Framework, r)
			}
		}
	}

	if !opts.write {
		return nil
	}
	written, err := writeAppConfigs(cmd, app, s, p, plans)
	if err != nil {
		return err
	}
	for _, res := range written {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s\n", SuccessStyle.Render("✓"), res.Status, res.Path)
	}
	return nil
}
