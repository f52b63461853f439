// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	t.Parallel()

	if ConfigLoadFailedId != 1 {
		t.Errorf("ConfigLoadFailedId = %d, want 1", ConfigLoadFailedId)
	}
	for id := ConfigLoadFailedId; id <= PermissionDeniedId; id++ {
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(PermissionDeniedId) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), PermissionDeniedId)
	}
	for i, v := range values {
		if v.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, v.Id(), i+1)
		}
		if strings.TrimSpace(string(v.MarkdownMsg())) == "" {
			t.Errorf("issue %d has empty guidance", v.Id())
		}
	}
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	if Get(0) != nil || Get(999) != nil {
		t.Error("Get() of unknown id should be nil")
	}
}

func TestIssue_LinksAreCopies(t *testing.T) {
	t.Parallel()

	i := Get(ConfigLoadFailedId)
	links := i.DocLinks()
	if len(links) == 0 {
		t.Fatal("DocLinks() should not be empty")
	}
	links[0] = "mutated"
	if i.DocLinks()[0] == "mutated" {
		t.Error("DocLinks() should return a copy")
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	md := Get(InvalidMonikerId).Markdown()
	if !strings.Contains(md, "Unknown target framework") {
		t.Errorf("Markdown() missing title:\n%s", md)
	}
	if !strings.Contains(md, "## See also") || !strings.Contains(md, "learn.microsoft.com") {
		t.Errorf("Markdown() missing links:\n%s", md)
	}
	if strings.Contains(Get(ReferenceCycleId).Markdown(), "See also") {
		t.Error("issue without links should not render a See also section")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(NativeAnyCPUId).Render("notty")
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if !strings.Contains(out, "AnyCPU") {
		t.Errorf("Render() output missing content:\n%s", out)
	}
}
