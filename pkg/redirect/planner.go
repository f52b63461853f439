// SPDX-License-Identifier: MPL-2.0

package redirect

import (
	"fmt"
	"slices"
	"strings"
)

type (
	// AssemblyReference is one assembly identity in a resolved reference closure.
	AssemblyReference struct {
		Name    string  `json:"name" yaml:"name"`
		Version Version `json:"version" yaml:"version"`
		// PublicKeyToken is the strong-name token, if any.
		PublicKeyToken string `json:"public_key_token,omitempty" yaml:"public_key_token,omitempty"`
		// Culture is the assembly culture; empty means neutral.
		Culture string `json:"culture,omitempty" yaml:"culture,omitempty"`
	}

	// VersionRange is an inclusive range of versions.
	VersionRange struct {
		Min Version `json:"min" yaml:"min"`
		Max Version `json:"max" yaml:"max"`
	}

	// BindingRedirect tells the runtime to load NewVersion whenever a version
	// in OldVersion is requested.
	BindingRedirect struct {
		AssemblyName   string       `json:"assembly_name" yaml:"assembly_name"`
		OldVersion     VersionRange `json:"old_version" yaml:"old_version"`
		NewVersion     Version      `json:"new_version" yaml:"new_version"`
		PublicKeyToken string       `json:"public_key_token,omitempty" yaml:"public_key_token,omitempty"`
		Culture        string       `json:"culture,omitempty" yaml:"culture,omitempty"`
	}

	// conflictSet collects every version seen for one assembly name.
	conflictSet struct {
		name           string
		publicKeyToken string
		culture        string
		versions       []Version
	}
)

// String renders the reference as "Name@1.0.0.0".
func (r AssemblyReference) String() string {
	return fmt.Sprintf("%s@%s", r.Name, r.Version)
}

// String renders the range as "min-max", the form used by the oldVersion attribute.
func (r VersionRange) String() string {
	return r.Min.String() + "-" + r.Max.String()
}

// Contains reports whether v lies inside the range.
func (r VersionRange) Contains(v Version) bool {
	return r.Min.Compare(v) <= 0 && v.Compare(r.Max) <= 0
}

// String renders the redirect as "Name: 1.0.0.0-1.0.0.0 -> 2.0.0.0".
func (b BindingRedirect) String() string {
	return fmt.Sprintf("%s: %s -> %s", b.AssemblyName, b.OldVersion, b.NewVersion)
}

// Plan returns the binding redirects a reference closure needs.
//
// References are grouped by assembly name (case-insensitive, the way the
// runtime binds). Every name seen with more than one distinct version gets
// one redirect to its highest version; the old range spans from the lowest
// version seen to the highest version below the new one. Names seen with a
// single version produce nothing, so a conflict-free closure yields an empty
// result. Redirects are ordered by assembly name and the input is not
// modified.
func Plan(closure []AssemblyReference) []BindingRedirect {
	groups := make(map[string]*conflictSet)
	var order []string

	for _, ref := range closure {
		key := strings.ToLower(strings.TrimSpace(ref.Name))
		if key == "" {
			continue
		}
		set, ok := groups[key]
		if !ok {
			set = &conflictSet{name: strings.TrimSpace(ref.Name)}
			groups[key] = set
			order = append(order, key)
		}
		if set.publicKeyToken == "" {
			set.publicKeyToken = ref.PublicKeyToken
		}
		if set.culture == "" {
			set.culture = ref.Culture
		}
		if !slices.Contains(set.versions, ref.Version) {
			set.versions = append(set.versions, ref.Version)
		}
	}

	slices.Sort(order)

	var redirects []BindingRedirect
	for _, key := range order {
		set := groups[key]
		if len(set.versions) < 2 {
			continue
		}
		slices.SortFunc(set.versions, Version.Compare)
		last := len(set.versions) - 1
		redirects = append(redirects, BindingRedirect{
			AssemblyName: set.name,
			OldVersion: VersionRange{
				Min: set.versions[0],
				Max: set.versions[last-1],
			},
			NewVersion:     set.versions[last],
			PublicKeyToken: set.publicKeyToken,
			Culture:        set.culture,
		})
	}
	return redirects
}

// Conflicts returns the names Plan would redirect, in the same order.
func Conflicts(closure []AssemblyReference) []string {
	redirects := Plan(closure)
	names := make([]string, 0, len(redirects))
	for _, r := range redirects {
		names = append(names, r.AssemblyName)
	}
	return names
}
