// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"github.com/exeplan/exeplan/internal/issue"
	"github.com/exeplan/exeplan/pkg/redirect"
)

const (
	// WriteSkipped means the plan has no redirects, so no file is needed.
	WriteSkipped WriteStatus = "skipped"
	// WriteUnchanged means an identical application configuration exists.
	WriteUnchanged WriteStatus = "unchanged"
	// WriteCreated means the file did not exist and was written.
	WriteCreated WriteStatus = "created"
	// WriteUpdated means an existing file with different redirects was replaced.
	WriteUpdated WriteStatus = "updated"
)

type (
	// WriteStatus describes what WriteAppConfig did.
	WriteStatus string

	// WriteResult is the outcome of writing one plan's artifacts.
	WriteResult struct {
		Path   string      `json:"path" yaml:"path"`
		Status WriteStatus `json:"status" yaml:"status"`
	}

	// Writer materializes application configuration files under a base
	// directory (usually the project directory).
	Writer struct {
		fs      afero.Fs
		baseDir string
		logger  *slog.Logger
	}
)

// NewWriter creates a Writer. A nil fs means the OS filesystem and a nil
// logger discards output.
func NewWriter(fs afero.Fs, baseDir string, logger *slog.Logger) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{fs: fs, baseDir: baseDir, logger: logger}
}

// WriteAppConfig writes <Name>.exe.config into the plan's output directory
// when the plan has redirects. An existing file carrying the same redirects
// is left untouched.
func (w *Writer) WriteAppConfig(ctx context.Context, plan *Plan) (WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return WriteResult{}, err
	}

	path := filepath.Join(plan.Output.Under(w.baseDir), plan.AppConfigName())
	if !plan.NeedsAppConfig() {
		w.logger.Debug("no binding redirects, app config not written", "path", path)
		return WriteResult{Path: path, Status: WriteSkipped}, nil
	}

	status := WriteCreated
	existing, err := afero.ReadFile(w.fs, path)
	switch {
	case err == nil:
		current, parseErr := redirect.ParseAppConfig(existing)
		if parseErr == nil && slices.Equal(current, plan.Redirects) {
			return WriteResult{Path: path, Status: WriteUnchanged}, nil
		}
		status = WriteUpdated
	case !errors.Is(err, os.ErrNotExist):
		return WriteResult{}, writeError(path, err)
	}

	data, err := redirect.RenderAppConfig(plan.Redirects)
	if err != nil {
		return WriteResult{}, writeError(path, err)
	}
	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return WriteResult{}, writeError(path, err)
	}
	if err := afero.WriteFile(w.fs, path, data, 0o644); err != nil {
		return WriteResult{}, writeError(path, err)
	}

	w.logger.Info("wrote app config", "path", path, "redirects", len(plan.Redirects), "status", status)
	return WriteResult{Path: path, Status: status}, nil
}

func writeError(path string, err error) error {
	id := issue.ArtifactWriteFailedId
	if errors.Is(err, os.ErrPermission) {
		id = issue.PermissionDeniedId
	}
	return issue.NewErrorContext().
		WithOperation("write application configuration").
		WithResource(path).
		WithSuggestion("Check that the output directory is writable").
		WithIssue(id).
		Wrap(err).
		BuildError()
}
