package reporter_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/stdkit/pkg/reporter"
)

func TestNewDiffEqual(t *testing.T) {
	t.Parallel()

	if d := reporter.NewDiff(".env", "A=1\n", "A=1\n"); d != nil {
		t.Errorf("NewDiff(equal) = %+v, want nil", d)
	}
	var d *reporter.Diff
	if d.HasChanges() || d.String() != "" {
		t.Error("nil diff reports changes")
	}
}

func TestNewDiffHunks(t *testing.T) {
	t.Parallel()

	var orig, mod []string
	for i := range 20 {
		line := "K" + strings.Repeat("x", i) + "=v"
		orig = append(orig, line)
		mod = append(mod, line)
	}
	mod[1] = "CHANGED=1"
	mod[18] = "CHANGED=2"

	d := reporter.NewDiff("a.env", strings.Join(orig, "\n")+"\n", strings.Join(mod, "\n")+"\n")
	if d == nil {
		t.Fatal("NewDiff() = nil")
	}
	if d.Additions != 2 || d.Deletions != 2 {
		t.Errorf("Additions/Deletions = %d/%d, want 2/2", d.Additions, d.Deletions)
	}

	headers := make([]string, 0, len(d.Hunks))
	for _, h := range d.Hunks {
		headers = append(headers, h.Header())
	}
	want := []string{"@@ -1,5 +1,5 @@", "@@ -16,5 +16,5 @@"}
	if diff := cmp.Diff(want, headers); diff != "" {
		t.Errorf("hunk headers mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDiffMergesNearbyChanges(t *testing.T) {
	t.Parallel()

	orig := "A=1\nB=2\nC=3\nD=4\nE=5\n"
	mod := "A=0\nB=2\nC=3\nD=4\nE=0\n"

	d := reporter.NewDiff(".env", orig, mod)
	if d == nil || len(d.Hunks) != 1 {
		t.Fatalf("NewDiff() = %+v, want one hunk", d)
	}
	if got := d.Hunks[0].Header(); got != "@@ -1,5 +1,5 @@" {
		t.Errorf("Header() = %q", got)
	}
}

func TestNewDiffPureInsertion(t *testing.T) {
	t.Parallel()

	d := reporter.NewDiff(".env", "", "A='1'\n")
	want := "--- a/.env\n+++ b/.env\n@@ -0,0 +1,1 @@\n+A='1'\n"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
