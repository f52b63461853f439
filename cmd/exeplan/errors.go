// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/fang"

	"github.com/exeplan/exeplan/internal/config"
	"github.com/exeplan/exeplan/internal/issue"
)

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderGuidance returns the catalog guidance attached to err rendered as
// Markdown, or "" when err carries none.
func renderGuidance(err error, scheme config.ColorScheme) string {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return ""
	}
	guidance := ae.Guidance()
	if guidance == nil {
		return ""
	}
	rendered, renderErr := guidance.Render(scheme.GlamourStyle())
	if renderErr != nil {
		return guidance.Markdown()
	}
	return rendered
}

// renderError is the fang error handler. Verbose runs add the full error
// chain and the catalog guidance.
func (a *App) renderError(w io.Writer, _ fang.Styles, err error) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.flags.verbose))

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code.IsUsage() {
		fmt.Fprintln(w, SubtitleStyle.Render("Run 'exeplan --help' for usage."))
		return
	}

	if a.flags.verbose {
		if guidance := renderGuidance(err, a.scheme); guidance != "" {
			fmt.Fprint(w, guidance)
		}
	}
}
