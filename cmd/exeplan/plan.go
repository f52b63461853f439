// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/exeplan/exeplan/internal/engine"
	"github.com/exeplan/exeplan/pkg/framework"
	"github.com/exeplan/exeplan/pkg/layout"
	"github.com/exeplan/exeplan/pkg/platform"
	"github.com/exeplan/exeplan/pkg/project"
)

type (
	planOptions struct {
		publish   bool
		framework string
		format    string
		write     bool
	}

	// planReport is the structured output of `exeplan plan`.
	planReport struct {
		Project string               `json:"project" yaml:"project"`
		File    string               `json:"file" yaml:"file"`
		Plans   []*engine.Plan       `json:"plans" yaml:"plans"`
		Written []engine.WriteResult `json:"written,omitempty" yaml:"written,omitempty"`
	}
)

func newPlanCommand(app *App) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan [project]",
		Short: "Resolve architecture, output directory and binding redirects",
		Long: `Resolve the build plan of a project for every target framework.

The project argument is a project file or a directory holding exeplan.cue,
exeplan.toml or exeplan.yaml. It defaults to the current directory.`,
		Example: `  exeplan plan
  exeplan plan ./src/App --publish
  exeplan plan exeplan.toml --framework net461 --format json
  exeplan plan --write`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, app, opts, projectArg(args))
		},
	}

	cmd.Flags().BoolVar(&opts.publish, "publish", false, "plan publish output instead of build output")
	cmd.Flags().StringVarP(&opts.framework, "framework", "f", "", "plan a single target framework")
	cmd.Flags().StringVarP(&opts.format, "format", "o", string(formatText), "output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.write, "write", false, "write <Name>.exe.config files into the output directories")

	return cmd
}

func runPlan(cmd *cobra.Command, app *App, opts *planOptions, path string) error {
	format, err := parseOutputFormat(opts.format)
	if err != nil {
		return usageError(err)
	}

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

	op := layout.OperationBuild
	if opts.publish {
		op = layout.OperationPublish
	}

	plans, err := eng.PlanProject(ctx, p, op, framework.Moniker(opts.framework))
	if err != nil {
		return err
	}

	report := planReport{Project: p.Name, File: p.FilePath, Plans: plans}
	if opts.write {
		report.Written, err = writeAppConfigs(cmd, app, s, p, plans)
		if err != nil {
			return err
		}
	}

	if format != formatText {
		return writeStructured(cmd.OutOrStdout(), format, report)
	}
	renderPlans(cmd.OutOrStdout(), report, s.verbose)
	return nil
}

// writeAppConfigs writes the application configuration of every plan that
// has redirects, relative to the project directory.
func writeAppConfigs(cmd *cobra.Command, app *App, s *session, p *project.Project, plans []*engine.Plan) ([]engine.WriteResult, error) {
	writer := engine.NewWriter(app.FS, filepath.Dir(p.FilePath), s.logger)

	var results []engine.WriteResult
	for _, plan := range plans {
		res, err := writer.WriteAppConfig(cmd.Context(), plan)
		if err != nil {
			return results, err
		}
		if res.Status != engine.WriteSkipped {
			results = append(results, res)
		}
	}
	return results, nil
}

func renderPlans(w io.Writer, report planReport, verbose bool) {
	for i, plan := range report.Plans {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, TitleStyle.Render(plan.AssemblyName)+" "+SubtitleStyle.Render(fmt.Sprintf("%s %s", plan.Framework, plan.Operation)))

		writeField(w, "  ", "architecture", SuccessStyle.Render(plan.Architecture.String())+" "+SubtitleStyle.Render("("+plan.ImageKind.String()+")"))

		ridValue := orNone(plan.RuntimeIdentifier)
		if plan.RuntimeIdentifier != "" {
			ridValue += " " + SubtitleStyle.Render("("+plan.RIDProvenance+")")
		}
		writeField(w, "  ", "runtime id", ridValue)
		writeField(w, "  ", "output", plan.OutputDir)

		native := plan.NativeSummary()
		if plan.Native == platform.NativeFails {
			native = ErrorStyle.Render(native)
		}
		writeField(w, "  ", "native", native)

		if verbose {
			writeField(w, "  ", "references", orNone(strings.Join(plan.DefaultReferences, ", ")))
		}

		if len(plan.Redirects) == 0 {
			writeField(w, "  ", "redirects", orNone(""))
		}
		for j, r := range plan.Redirects {
			key := ""
			if j == 0 {
				key = "redirects"
			}
			writeField(w, "  ", key, r.String())
		}

		writeField(w, "  ", "artifacts", strings.Join(plan.Artifacts, ", "))

		for _, d := range plan.Diagnostics {
			writeField(w, "  ", d.Severity.String(), WarningStyle.Render(d.Message))
		}
	}

	for _, res := range report.Written {
		fmt.Fprintf(w, "%s %s %s\n", SuccessStyle.Render("✓"), res.Status, res.Path)
	}
}
