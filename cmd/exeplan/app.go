// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/exeplan/exeplan/internal/config"
	"github.com/exeplan/exeplan/internal/issue"
	"github.com/exeplan/exeplan/pkg/project"
)

type (
	sessionContextKey struct{}

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra command handler receives an App
	// reference and reaches configuration, projects and the filesystem
	// through it.
	App struct {
		Config   ConfigProvider
		Projects ProjectLoader
		FS       afero.Fs
		stdout   io.Writer
		stderr   io.Writer

		flags rootFlags
		// scheme styles rendered guidance once configuration is loaded.
		scheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		// Projects reads project files. The default reads from FS.
		Projects ProjectLoader
		FS       afero.Fs
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// ProjectLoader reads a project file, or the project file of a directory.
	ProjectLoader interface {
		Load(path string) (*project.Project, error)
	}

	rootFlags struct {
		verbose    bool
		configPath string
	}

	// session is the per-invocation state resolved before a command runs.
	session struct {
		cfg     *config.Config
		logger  *slog.Logger
		verbose bool
	}
)

// NewApp creates an App, filling nil dependencies with production defaults.
func NewApp(deps Dependencies) (*App, error) {
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Projects == nil {
		deps.Projects = project.NewLoader(deps.FS)
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	return &App{
		Config:   deps.Config,
		Projects: deps.Projects,
		FS:       deps.FS,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

// loadOptions returns the configuration loading options implied by the
// root flags.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.flags.configPath}
}

// startSession loads the configuration, builds the logger and attaches
// both to the command context.
func (a *App) startSession(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return err
	}

	// The flag wins; the config file can only turn verbose output on.
	if !a.flags.verbose {
		a.flags.verbose = cfg.UI.Verbose
	}
	a.scheme = cfg.UI.ColorScheme

	s := &session{
		cfg:     cfg,
		logger:  newLogger(a.stderr, cfg.Log.Level, a.flags.verbose),
		verbose: a.flags.verbose,
	}
	s.logger.Debug("configuration loaded", "source", sourceOrDefaults(cfg.Source))

	cmd.SetContext(context.WithValue(ctx, sessionContextKey{}, s))
	return nil
}

// sessionFrom returns the session attached by startSession. Commands that
// skip configuration loading get built-in defaults.
func (a *App) sessionFrom(ctx context.Context) *session {
	if ctx != nil {
		if s, ok := ctx.Value(sessionContextKey{}).(*session); ok {
			return s
		}
	}
	cfg := config.DefaultConfig()
	return &session{
		cfg:     cfg,
		logger:  newLogger(a.stderr, cfg.Log.Level, a.flags.verbose),
		verbose: a.flags.verbose,
	}
}

// loadProject reads the project at path and turns loading failures into
// actionable errors.
func (a *App) loadProject(path string) (*project.Project, error) {
	p, err := a.Projects.Load(path)
	if err == nil {
		return p, nil
	}

	if errors.Is(err, project.ErrNotFound) {
		return nil, issue.NewErrorContext().
			WithOperation("load project").
			WithResource(path).
			WithSuggestion("Create exeplan.cue, exeplan.toml or exeplan.yaml in the project directory").
			WithSuggestion("Or pass the project file path as the first argument").
			WithIssue(issue.ProjectNotFoundId).
			Wrap(err).
			BuildError()
	}
	return nil, issue.NewErrorContext().
		WithOperation("load project").
		WithResource(path).
		WithSuggestion("Check the project file against the documented keys").
		WithIssue(issue.ProjectParseErrorId).
		Wrap(err).
		BuildError()
}

func sourceOrDefaults(path string) string {
	if path == "" {
		return "(defaults)"
	}
	return path
}

func projectArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
