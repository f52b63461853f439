// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exeplan/exeplan/internal/issue"
	"github.com/exeplan/exeplan/pkg/framework"
	"github.com/exeplan/exeplan/pkg/layout"
	"github.com/exeplan/exeplan/pkg/rid"
)

var errFrameworkRequired = errors.New("--framework is required")

type outdirOptions struct {
	framework string
	runtimeID string
	implicit  bool
	append    bool
	publish   bool
}

func newOutdirCommand(app *App) *cobra.Command {
	opts := &outdirOptions{}

	cmd := &cobra.Command{
		Use:   "outdir",
		Short: "Compute a build or publish output directory",
		Long: `Compute the output directory for one target framework.

Build output gets a runtime identifier segment only when the identifier is
declared explicitly and --append is set. Publish output gets one whenever a
runtime identifier is present. --implicit treats --rid as inferred by the
toolchain rather than declared.`,
		Example: `  exeplan outdir --framework net46
  exeplan outdir --framework net46 --rid win7-x64 --append
  exeplan outdir --framework net46 --rid win7-x86 --implicit --publish`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOutdir(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.framework, "framework", "f", "", "target framework moniker, e.g. net46 (required)")
	cmd.Flags().StringVar(&opts.runtimeID, "rid", "", "runtime identifier, e.g. win7-x86")
	cmd.Flags().BoolVar(&opts.implicit, "implicit", false, "the runtime identifier was inferred, not declared")
	cmd.Flags().BoolVar(&opts.append, "append", false, "append an explicit runtime identifier to build output")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "compute the publish directory")

	return cmd
}

func runOutdir(cmd *cobra.Command, app *App, opts *outdirOptions) error {
	target, err := parseFrameworkFlag(opts.framework, "compute output directory")
	if err != nil {
		return err
	}

	setting := rid.Explicit(rid.RuntimeIdentifier(opts.runtimeID))
	if opts.implicit {
		setting = rid.Inferred(rid.RuntimeIdentifier(opts.runtimeID))
	}

	op := layout.OperationBuild
	if opts.publish {
		op = layout.OperationPublish
	}

	s := app.sessionFrom(cmd.Context())
	roots, err := s.cfg.Output.Roots(nil)
	if err != nil {
		return err
	}

	out := layout.Resolve(roots, target.Moniker, setting, opts.append, op)
	s.logger.Debug("resolved output directory", "framework", target.Moniker, "rid", setting, "append", opts.append, "operation", op)

	fmt.Fprintln(cmd.OutOrStdout(), out.Slash())
	return nil
}

// parseFrameworkFlag validates a required --framework value.
func parseFrameworkFlag(value, operation string) (framework.Target, error) {
	if value == "" {
		return framework.Target{}, usageError(errFrameworkRequired)
	}
	target, err := framework.Parse(framework.Moniker(value))
	if err != nil {
		return framework.Target{}, usageError(issue.NewErrorContext().
			WithOperation(operation).
			WithResource("--framework").
			WithSuggestion("Use a short moniker such as net46, net461, netstandard2.0 or net8.0").
			WithIssue(issue.InvalidMonikerId).
			Wrap(err).
			BuildError())
	}
	return target, nil
}
