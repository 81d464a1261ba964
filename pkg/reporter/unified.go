package reporter

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged context line.
	LineContext LineKind = iota

	// LineAdd is a line added in the modified version.
	LineAdd

	// LineRemove is a line removed from the original version.
	LineRemove
)

// Line is a single line in a hunk, without its diff prefix.
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// Diff is a line-based unified diff between two versions of a file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// NewDiff compares original and modified line by line. It returns nil when
// they are equal.
func NewDiff(path, original, modified string) *Diff {
	if original == modified {
		return nil
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(original, modified)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	ops := toOps(diffs)
	hunks := groupIntoHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{Path: path, Hunks: hunks}
	for _, op := range ops {
		switch op.Kind {
		case LineAdd:
			diff.Additions++
		case LineRemove:
			diff.Deletions++
		}
	}
	return diff
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", d.Path)
	fmt.Fprintf(&builder, "+++ b/%s\n", d.Path)

	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext:
				builder.WriteByte(' ')
			case LineAdd:
				builder.WriteByte('+')
			case LineRemove:
				builder.WriteByte('-')
			}
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// toOps flattens line-mode diffs into one op per line. Line terminators are
// dropped, "\r\n" included.
func toOps(diffs []diffmatchpatch.Diff) []Line {
	var ops []Line
	for _, diff := range diffs {
		kind := LineContext
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			kind = LineAdd
		case diffmatchpatch.DiffDelete:
			kind = LineRemove
		case diffmatchpatch.DiffEqual:
		}

		for _, raw := range strings.SplitAfter(diff.Text, "\n") {
			if raw == "" {
				continue
			}
			content := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
			ops = append(ops, Line{Kind: kind, Content: content})
		}
	}
	return ops
}

// groupIntoHunks merges changes closer than 2*contextLines into one hunk.
func groupIntoHunks(ops []Line) []Hunk {
	type changeRange struct {
		start, end int // indices into ops, end exclusive
	}

	var ranges []changeRange
	for i, op := range ops {
		if op.Kind == LineContext {
			continue
		}
		if n := len(ranges); n > 0 && ranges[n-1].end == i {
			ranges[n-1].end = i + 1
			continue
		}
		ranges = append(ranges, changeRange{i, i + 1})
	}

	var hunks []Hunk
	for i := 0; i < len(ranges); {
		j := i + 1
		for j < len(ranges) && ranges[j].start-ranges[j-1].end <= contextLines*2 {
			j++
		}
		hunks = append(hunks, buildHunk(ops, ranges[i].start, ranges[j-1].end))
		i = j
	}
	return hunks
}

func buildHunk(ops []Line, changeStart, changeEnd int) Hunk {
	start := max(0, changeStart-contextLines)
	end := min(len(ops), changeEnd+contextLines)

	origLine, modLine := 1, 1
	for _, op := range ops[:start] {
		if op.Kind != LineAdd {
			origLine++
		}
		if op.Kind != LineRemove {
			modLine++
		}
	}

	hunk := Hunk{OriginalStart: origLine, ModifiedStart: modLine}
	for _, op := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, op)
		switch op.Kind {
		case LineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case LineRemove:
			hunk.OriginalCount++
		case LineAdd:
			hunk.ModifiedCount++
		}
	}

	// An empty side starts at the line before the hunk.
	if hunk.OriginalCount == 0 {
		hunk.OriginalStart--
	}
	if hunk.ModifiedCount == 0 {
		hunk.ModifiedStart--
	}
	return hunk
}
