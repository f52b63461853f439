// SPDX-License-Identifier: MPL-2.0

package redirect

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

const (
	// AssemblyBindingNamespace is the XML namespace of the assemblyBinding element.
	AssemblyBindingNamespace = "urn:schemas-microsoft-com:asm.v1"

	// AppConfigSuffix is appended to the executable file name to form the
	// application configuration file name (App.exe -> App.exe.config).
	AppConfigSuffix = ".config"

	xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"
)

// ErrNoRedirects is returned when rendering an app config without redirects.
// A conflict-free closure produces no configuration artifact.
var ErrNoRedirects = errors.New("no binding redirects to render")

type (
	appConfigDocument struct {
		XMLName xml.Name       `xml:"configuration"`
		Runtime runtimeSection `xml:"runtime"`
	}

	runtimeSection struct {
		AssemblyBinding assemblyBinding `xml:"urn:schemas-microsoft-com:asm.v1 assemblyBinding"`
	}

	assemblyBinding struct {
		DependentAssemblies []dependentAssembly `xml:"dependentAssembly"`
	}

	dependentAssembly struct {
		Identity assemblyIdentity `xml:"assemblyIdentity"`
		Redirect bindingRedirect  `xml:"bindingRedirect"`
	}

	assemblyIdentity struct {
		Name           string `xml:"name,attr"`
		PublicKeyToken string `xml:"publicKeyToken,attr,omitempty"`
		Culture        string `xml:"culture,attr,omitempty"`
	}

	bindingRedirect struct {
		OldVersion string `xml:"oldVersion,attr"`
		NewVersion string `xml:"newVersion,attr"`
	}
)

// AppConfigFileName returns the configuration file name for an executable
// named assemblyName, e.g. "App" -> "App.exe.config".
func AppConfigFileName(assemblyName string) string {
	return assemblyName + ".exe" + AppConfigSuffix
}

// RenderAppConfig serializes redirects into an application configuration
// document: one dependentAssembly per redirect under
// configuration/runtime/assemblyBinding.
func RenderAppConfig(redirects []BindingRedirect) ([]byte, error) {
	if len(redirects) == 0 {
		return nil, ErrNoRedirects
	}

	doc := appConfigDocument{}
	for _, r := range redirects {
		culture := r.Culture
		if culture == "" && r.PublicKeyToken != "" {
			culture = "neutral"
		}
		doc.Runtime.AssemblyBinding.DependentAssemblies = append(doc.Runtime.AssemblyBinding.DependentAssemblies, dependentAssembly{
			Identity: assemblyIdentity{
				Name:           r.AssemblyName,
				PublicKeyToken: r.PublicKeyToken,
				Culture:        culture,
			},
			Redirect: bindingRedirect{
				OldVersion: r.OldVersion.String(),
				NewVersion: r.NewVersion.String(),
			},
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render app config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.Write(body)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// ParseAppConfig reads the binding redirects back from an application
// configuration document.
func ParseAppConfig(data []byte) ([]BindingRedirect, error) {
	var doc appConfigDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}

	var redirects []BindingRedirect
	for _, da := range doc.Runtime.AssemblyBinding.DependentAssemblies {
		oldRange, err := parseRange(da.Redirect.OldVersion)
		if err != nil {
			return nil, fmt.Errorf("assembly %s: %w", da.Identity.Name, err)
		}
		newVersion, err := ParseVersion(da.Redirect.NewVersion)
		if err != nil {
			return nil, fmt.Errorf("assembly %s: %w", da.Identity.Name, err)
		}
		culture := da.Identity.Culture
		if culture == "neutral" {
			culture = ""
		}
		redirects = append(redirects, BindingRedirect{
			AssemblyName:   da.Identity.Name,
			OldVersion:     oldRange,
			NewVersion:     newVersion,
			PublicKeyToken: da.Identity.PublicKeyToken,
			Culture:        culture,
		})
	}
	return redirects, nil
}

// parseRange accepts "min-max" or a single version.
func parseRange(s string) (VersionRange, error) {
	lo, hi, found := strings.Cut(s, "-")
	minV, err := ParseVersion(lo)
	if err != nil {
		return VersionRange{}, err
	}
	if !found {
		return VersionRange{Min: minV, Max: minV}, nil
	}
	maxV, err := ParseVersion(hi)
	if err != nil {
		return VersionRange{}, err
	}
	return VersionRange{Min: minV, Max: maxV}, nil
}
