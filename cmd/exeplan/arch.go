// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/exeplan/exeplan/internal/issue"
	"github.com/exeplan/exeplan/pkg/platform"
	"github.com/exeplan/exeplan/pkg/rid"
)

type archOptions struct {
	platformTarget string
	runtimeID      string
	native         bool
}

func newArchCommand(app *App) *cobra.Command {
	opts := &archOptions{}

	cmd := &cobra.Command{
		Use:   "arch",
		Short: "Resolve the architecture of an executable",
		Long: `Resolve the architecture an executable is compiled for.

An explicit --platform-target always wins. Otherwise the second segment of
--rid decides (x86, x64 or arm); anything else, arm64 included, builds as
AnyCPU. With --native and no --rid, a runtime identifier is inferred the
way planning does.`,
		Example: `  exeplan arch --rid win10-x64
  exeplan arch --platform-target x64 --rid win7-x86
  exeplan arch --native`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runArch(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.platformTarget, "platform-target", "", "explicit platform target: x86, x64, arm or AnyCPU")
	cmd.Flags().StringVar(&opts.runtimeID, "rid", "", "runtime identifier, e.g. win7-x86")
	cmd.Flags().BoolVar(&opts.native, "native", false, "the executable uses native code")

	return cmd
}

func runArch(cmd *cobra.Command, app *App, opts *archOptions) error {
	explicit, err := platform.ParseArchitecture(opts.platformTarget)
	if err != nil {
		return usageError(issue.NewErrorContext().
			WithOperation("resolve architecture").
			WithResource("--platform-target").
			WithSuggestion("Use one of: x86, x64, arm, AnyCPU").
			WithIssue(issue.InvalidArchitectureId).
			Wrap(err).
			BuildError())
	}

	s := app.sessionFrom(cmd.Context())
	setting := platform.InferRuntimeIdentifier(
		rid.Explicit(rid.RuntimeIdentifier(opts.runtimeID)),
		explicit,
		opts.native,
		s.cfg.RuntimeIdentifier.ImplicitDefault,
	)

	arch := platform.ResolveArchitecture(explicit, setting.Identifier())
	s.logger.Debug("resolved architecture", "explicit", explicit, "rid", setting, "architecture", arch)

	w := cmd.OutOrStdout()
	writeField(w, "", "architecture", SuccessStyle.Render(arch.String()))
	writeField(w, "", "image kind", arch.ImageKind().String())
	if setting.IsPresent() {
		writeField(w, "", "runtime id", setting.Identifier().String()+" "+SubtitleStyle.Render("("+setting.Provenance().String()+")"))
	} else {
		writeField(w, "", "runtime id", orNone(""))
	}
	writeField(w, "", "native", platform.PredictNativeOutcome(arch, opts.native).Describe(arch.ImageKind()))
	return nil
}
