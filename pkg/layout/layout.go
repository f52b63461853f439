// SPDX-License-Identifier: MPL-2.0

package layout

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/exeplan/exeplan/pkg/framework"
	"github.com/exeplan/exeplan/pkg/rid"
)

const (
	// OperationBuild produces the local development output.
	OperationBuild Operation = "build"
	// OperationPublish produces the deployment artifact.
	OperationPublish Operation = "publish"

	// DefaultPublishLeaf is the directory publish output ends with.
	DefaultPublishLeaf = "publish"
)

// ErrInvalidOperation is the sentinel error wrapped by InvalidOperationError.
var ErrInvalidOperation = errors.New("invalid operation")

type (
	// Operation is the kind of request an output path is computed for.
	Operation string

	// InvalidOperationError is returned when an Operation value is not recognized.
	InvalidOperationError struct {
		Value Operation
	}

	// Roots are the configurable bases an OutputPath is composed on.
	Roots struct {
		// Base is the output root, e.g. "bin/Debug".
		Base string
		// PublishLeaf is appended to publish output; empty means no leaf.
		PublishLeaf string
	}

	// OutputPath is a composed output directory:
	// Base / Framework / [RuntimeIdentifier] / [Leaf].
	OutputPath struct {
		Base      string
		Framework framework.Moniker
		// RuntimeIdentifier is empty when the path has no RID segment.
		RuntimeIdentifier rid.RuntimeIdentifier
		Leaf              string
	}
)

// ParseOperation converts a string into an Operation (case-insensitive).
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	if ok, errs := op.IsValid(); !ok {
		return "", errs[0]
	}
	return op, nil
}

// String returns the string representation of the Operation.
func (o Operation) String() string { return string(o) }

// IsValid returns whether the Operation is build or publish.
func (o Operation) IsValid() (bool, []error) {
	switch o {
	case OperationBuild, OperationPublish:
		return true, nil
	default:
		return false, []error{&InvalidOperationError{Value: o}}
	}
}

// Error implements the error interface for InvalidOperationError.
func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation %q (valid: build, publish)", e.Value)
}

// Unwrap returns ErrInvalidOperation for errors.Is() compatibility.
func (e *InvalidOperationError) Unwrap() error { return ErrInvalidOperation }

// AppendsRuntimeIdentifier reports whether output for op gets a RID segment.
//
// Build output is compact and flag-controlled: only an explicitly declared
// RID is appended, and only when appendFlag is set. Publish output is always
// scoped by RID once one exists, declared or inferred, and ignores the flag.
// No RID means no segment for either operation.
func AppendsRuntimeIdentifier(setting rid.Setting, appendFlag bool, op Operation) bool {
	if !setting.IsPresent() {
		return false
	}
	if op == OperationPublish {
		return true
	}
	return setting.IsExplicit() && appendFlag
}

// Resolve composes the output path for one framework and operation. It is a
// pure function of its inputs.
func Resolve(roots Roots, moniker framework.Moniker, setting rid.Setting, appendFlag bool, op Operation) OutputPath {
	p := OutputPath{
		Base:      roots.Base,
		Framework: moniker,
	}
	if AppendsRuntimeIdentifier(setting, appendFlag, op) {
		p.RuntimeIdentifier = setting.Identifier()
	}
	if op == OperationPublish {
		p.Leaf = roots.PublishLeaf
	}
	return p
}

// HasRuntimeIdentifierSegment reports whether the path is scoped by a RID.
func (p OutputPath) HasRuntimeIdentifierSegment() bool { return p.RuntimeIdentifier != "" }

// Segments returns the non-empty path segments in order.
func (p OutputPath) Segments() []string {
	var segs []string
	for _, s := range []string{p.Base, string(p.Framework), string(p.RuntimeIdentifier), p.Leaf} {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// String joins the segments with the host path separator.
func (p OutputPath) String() string { return filepath.Join(p.Segments()...) }

// Slash joins the segments with forward slashes, independent of the host.
func (p OutputPath) Slash() string { return filepath.ToSlash(p.String()) }

// Under returns the path rooted at dir, for projects living outside the
// working directory.
func (p OutputPath) Under(dir string) string {
	return filepath.Join(dir, p.String())
}
