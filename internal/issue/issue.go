// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	ConfigLoadFailedId Id = iota + 1
	ProjectNotFoundId
	ProjectParseErrorId
	InvalidMonikerId
	InvalidArchitectureId
	ClosureUnavailableId
	ReferenceCycleId
	NativeAnyCPUId
	ArtifactWriteFailedId
	PermissionDeniedId
)

// DocsBase is the root of the user documentation.
const DocsBase HttpLink = "https://github.com/exeplan/exeplan/blob/main/docs"

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is guidance text in Markdown.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a catalog entry: Markdown guidance plus links.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

// Id returns the catalog id.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw guidance.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Markdown returns the guidance followed by a "See also" link list.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

// Render renders the guidance for a terminal. stylePath is a glamour
// style name ("dark", "light", "notty", "auto") or a style file.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration

The configuration file could not be read or does not match the schema.

## Things you can try
- Print the file location:
~~~
$ exeplan config path
~~~
- Compare it with the defaults:
~~~
$ exeplan config show
~~~
- Every key is optional. Remove the ones you are unsure about.`,
		docLinks: []HttpLink{DocsBase + "/configuration.md"},
	}

	projectNotFoundIssue = &Issue{
		id: ProjectNotFoundId,
		mdMsg: `
# No project file found

exeplan looks for ` + "`exeplan.cue`, `exeplan.toml`, `exeplan.yaml` or `exeplan.yml`" + `
in the given directory (the current directory by default).

## Minimal project
~~~cue
name:             "ConsoleApp"
target_framework: "net461"
~~~`,
		docLinks: []HttpLink{DocsBase + "/project.md"},
	}

	projectParseErrorIssue = &Issue{
		id: ProjectParseErrorId,
		mdMsg: `
# The project file is invalid

The error above names the file and the offending key.

## Common causes
- A misspelled key (unknown keys are rejected in every format)
- ` + "`output_type`" + ` other than "exe" or "library"
- A package version with more than four components
- An assembly name that is a Windows device name such as CON or NUL`,
		docLinks: []HttpLink{DocsBase + "/project.md"},
	}

	invalidMonikerIssue = &Issue{
		id: InvalidMonikerId,
		mdMsg: `
# Unknown target framework

Use short target framework monikers, for example:

| moniker | framework |
|---|---|
| net46, net461, net48 | .NET Framework |
| netstandard2.0 | .NET Standard |
| netcoreapp3.1, net8.0 | .NET Core / .NET |

Several frameworks are separated with semicolons: ` + "`net40;net45;net461`" + `.`,
		extLinks: []HttpLink{"https://learn.microsoft.com/dotnet/standard/frameworks"},
	}

	invalidArchitectureIssue = &Issue{
		id: InvalidArchitectureId,
		mdMsg: `
# Unknown platform target

` + "`platform_target`" + ` accepts x86, x64, arm or AnyCPU. Leave it unset to
derive the architecture from the runtime identifier.`,
	}

	closureUnavailableIssue = &Issue{
		id: ClosureUnavailableId,
		mdMsg: `
# The reference closure is unavailable

Binding redirects are generated for .NET Framework executables, which
requires the full set of referenced assemblies and their versions.

## Things you can try
- Fix the package list in the project file (see the error above)
- Disable generation for this project:
~~~cue
auto_generate_binding_redirects: false
~~~
- Or disable it globally with ` + "`binding_redirects: enabled: false`" + ` in the configuration`,
	}

	referenceCycleIssue = &Issue{
		id: ReferenceCycleId,
		mdMsg: `
# Package reference cycle

The packages listed in the error depend on each other. A package closure
must be acyclic. Remove one of the dependency entries.`,
	}

	nativeAnyCPUIssue = &Issue{
		id: NativeAnyCPUId,
		mdMsg: `
# Native code in an AnyCPU executable

An AnyCPU executable runs as 64-bit on a 64-bit OS, so a native
dependency built for a single architecture fails to load at run time.
The build itself succeeds.

## Things you can try
- Set ` + "`platform_target`" + ` to x86 or x64
- Or declare a ` + "`runtime_identifier`" + ` such as win7-x86
- Silence the diagnostic with ` + "`diagnostics: native_any_cpu: \"off\"`",
	}

	artifactWriteFailedIssue = &Issue{
		id: ArtifactWriteFailedId,
		mdMsg: `
# Failed to write the application configuration

The plan succeeded but ` + "`<Name>.exe.config`" + ` could not be written to the
output directory.

## Things you can try
- Check that the output directory is writable
- Run without ` + "`--write`" + ` to only print the plan`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

You don't have permission to read or write one of the files involved.

## Things you can try
- Check file and directory permissions
- Run exeplan from a directory you own`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		projectNotFoundIssue.Id():     projectNotFoundIssue,
		projectParseErrorIssue.Id():   projectParseErrorIssue,
		invalidMonikerIssue.Id():      invalidMonikerIssue,
		invalidArchitectureIssue.Id(): invalidArchitectureIssue,
		closureUnavailableIssue.Id():  closureUnavailableIssue,
		referenceCycleIssue.Id():      referenceCycleIssue,
		nativeAnyCPUIssue.Id():        nativeAnyCPUIssue,
		artifactWriteFailedIssue.Id(): artifactWriteFailedIssue,
		permissionDeniedIssue.Id():    permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	catalog := maps.Clone(issues)
	values := make([]*Issue, 0, len(catalog))
	for _, i := range catalog {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
