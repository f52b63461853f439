// SPDX-License-Identifier: MPL-2.0

package project

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/exeplan/exeplan/pkg/cueutil"
)

const (
	// FormatCUE is a project written in CUE.
	FormatCUE Format = "cue"
	// FormatTOML is a project written in TOML.
	FormatTOML Format = "toml"
	// FormatYAML is a project written in YAML.
	FormatYAML Format = "yaml"

	// BaseName is the file name (without extension) Discover looks for.
	BaseName = "exeplan"
)

var (
	//go:embed project_schema.cue
	projectSchema []byte

	// ErrNotFound is returned by Discover when a directory holds no project file.
	ErrNotFound = errors.New("no project file found")

	// ErrUnsupportedFormat is returned for files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported project file format")
)

type (
	// Format is a project file format, named after its file extension.
	Format string

	// Loader reads project files from a filesystem.
	Loader struct {
		fs afero.Fs
	}
)

// NewLoader creates a Loader reading from fs. A nil fs means the OS filesystem.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return FormatCUE, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s (expected .cue, .toml, .yaml or .yml)", ErrUnsupportedFormat, path)
	}
}

// Discover returns the project file in dir, trying exeplan.cue,
// exeplan.toml, exeplan.yaml and exeplan.yml in that order.
func (l *Loader) Discover(dir string) (string, error) {
	for _, ext := range []string{".cue", ".toml", ".yaml", ".yml"} {
		candidate := filepath.Join(dir, BaseName+ext)
		if _, err := l.fs.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, dir)
}

// Load reads and validates the project at path. A directory is resolved
// with Discover.
func (l *Loader) Load(path string) (*Project, error) {
	if info, err := l.fs.Stat(path); err == nil && info.IsDir() {
		found, dErr := l.Discover(path)
		if dErr != nil {
			return nil, dErr
		}
		path = found
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("project file %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read project at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses and validates project content. The format is taken
// from path's extension.
func ParseBytes(data []byte, path string) (*Project, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var p *Project
	switch format {
	case FormatCUE:
		p, err = cueutil.Decode[Project](projectSchema, data, "#Project", cueutil.WithFilename(path))
	case FormatTOML:
		p, err = decodeTOML(data, path)
	case FormatYAML:
		p, err = decodeYAML(data, path)
	}
	if err != nil {
		return nil, err
	}

	p.FilePath = path
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func decodeTOML(data []byte, path string) (*Project, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}
	var p Project
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

func decodeYAML(data []byte, path string) (*Project, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}
	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}
