// SPDX-License-Identifier: MPL-2.0

package framework

// implicitReference is a framework assembly referenced by default starting
// with the framework version matched by constraint.
type implicitReference struct {
	name       string
	constraint string
}

var implicitReferences = []implicitReference{
	{name: "System", constraint: ">= 2.0"},
	{name: "System.Data", constraint: ">= 2.0"},
	{name: "System.Drawing", constraint: ">= 2.0"},
	{name: "System.Xml", constraint: ">= 2.0"},
	// introduced in 3.5
	{name: "System.Core", constraint: ">= 3.5"},
	{name: "System.Runtime.Serialization", constraint: ">= 3.5"},
	{name: "System.Xml.Linq", constraint: ">= 3.5"},
	// introduced in 4.0
	{name: "System.Numerics", constraint: ">= 4.0"},
	// introduced in 4.5
	{name: "System.IO.Compression.FileSystem", constraint: ">= 4.5"},
}

// DefaultReferences returns the framework assemblies referenced implicitly
// by a project targeting t. Only the .NET Framework has implicit assembly
// references; other families return nil.
func DefaultReferences(t Target) []string {
	if !t.IsDesktop() {
		return nil
	}
	var refs []string
	for _, ref := range implicitReferences {
		if t.Satisfies(ref.constraint) {
			refs = append(refs, ref.name)
		}
	}
	return refs
}
