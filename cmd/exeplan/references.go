// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exeplan/exeplan/pkg/framework"
)

func newReferencesCommand(app *App) *cobra.Command {
	var moniker string

	cmd := &cobra.Command{
		Use:   "references",
		Short: "List the framework assemblies referenced by default",
		Long: `List the framework assemblies a project references implicitly.

Only .NET Framework targets have implicit references; other targets print
nothing.`,
		Example: `  exeplan references --framework net461`,
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := parseFrameworkFlag(moniker, "list default references")
			if err != nil {
				return err
			}

			refs := framework.DefaultReferences(target)
			if len(refs) == 0 {
				app.sessionFrom(cmd.Context()).logger.Info("framework has no implicit references", "framework", target.Moniker, "family", target.Family)
			}
			for _, ref := range refs {
				fmt.Fprintln(cmd.OutOrStdout(), ref)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&moniker, "framework", "f", "", "target framework moniker, e.g. net461 (required)")

	return cmd
}
