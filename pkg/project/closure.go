// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"
	"strings"

	"github.com/exeplan/exeplan/internal/dag"
	"github.com/exeplan/exeplan/pkg/redirect"
)

// Closure returns the resolved reference closure of the project: every
// declared package and every package they depend on, each identity
// (name, version) listed once. The order is topological, referencing
// packages before the packages they reference. A dependency cycle is an
// error.
func (p *Project) Closure() ([]redirect.AssemblyReference, error) {
	g := dag.New[string]()
	refs := make(map[string]redirect.AssemblyReference)

	add := func(name, version, token, culture string) (string, error) {
		v, err := redirect.ParseVersion(version)
		if err != nil {
			return "", fmt.Errorf("package %s: %w", name, err)
		}
		key := referenceKey(name, v)
		existing, ok := refs[key]
		if !ok {
			existing = redirect.AssemblyReference{Name: strings.TrimSpace(name), Version: v}
		}
		if existing.PublicKeyToken == "" {
			existing.PublicKeyToken = token
		}
		if existing.Culture == "" {
			existing.Culture = culture
		}
		refs[key] = existing
		g.AddNode(key)
		return key, nil
	}

	for _, pkg := range p.Packages {
		from, err := add(pkg.Name, pkg.Version, pkg.PublicKeyToken, pkg.Culture)
		if err != nil {
			return nil, err
		}
		for _, dep := range pkg.Dependencies {
			to, err := add(dep.Name, dep.Version, "", "")
			if err != nil {
				return nil, err
			}
			g.AddEdge(from, to)
		}
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	closure := make([]redirect.AssemblyReference, 0, len(order))
	for _, key := range order {
		closure = append(closure, refs[key])
	}
	return closure, nil
}

func referenceKey(name string, v redirect.Version) string {
	return strings.ToLower(strings.TrimSpace(name)) + "@" + v.String()
}
