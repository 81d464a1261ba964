package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minKeyWidth      = 8
	minValueWidth    = 20
	minSourceWidth   = 10
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow is one variable in a listing.
type TableRow struct {
	Key    string
	Value  string
	Source string

	// Masked rows render Value with the Masked style.
	Masked bool
}

// TableFormatter formats variables as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type columnWidths struct {
	key    int
	value  int
	source int // 0 hides the column
}

// total is the rendered line width: a leading space, then the columns
// separated by tablePadding.
func (w columnWidths) total() int {
	total := 1 + w.key + tablePadding + w.value
	if w.source > 0 {
		total += tablePadding + w.source
	}
	return total
}

// FormatTable renders rows under a KEY / VALUE header, plus a SOURCE
// column when any row has one.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return t.styles.Dim.Render("No variables.") + "\n"
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}
	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")
	builder.WriteString(t.styles.Dim.Render(fmt.Sprintf(" %d %s", len(rows), plural(len(rows), "variable", "variables"))))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{key: minKeyWidth, value: minValueWidth}

	for _, row := range rows {
		widths.key = max(widths.key, len(row.Key))
		widths.value = max(widths.value, len(row.Value))
		if row.Source != "" {
			widths.source = max(widths.source, minSourceWidth, len(row.Source))
		}
	}

	// Shrink the widest columns first to fit the terminal.
	if excess := widths.total() - t.termWidth; excess > 0 {
		cut := min(excess, widths.value-minValueWidth)
		widths.value -= cut
		excess -= cut
		if excess > 0 && widths.source > 0 {
			widths.source = max(minSourceWidth, widths.source-excess)
		}
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s", widths.key, "KEY", widths.value, "VALUE")
	if widths.source > 0 {
		header += fmt.Sprintf("  %-*s", widths.source, "SOURCE")
	}
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	key := fmt.Sprintf("%-*s", widths.key, row.Key)

	value := fmt.Sprintf("%-*s", widths.value, truncateString(singleLine(row.Value), widths.value))
	valueStyle := t.styles.Value
	if row.Masked {
		valueStyle = t.styles.Masked
	}

	line := " " + t.styles.Key.Render(key) + "  " + valueStyle.Render(value)
	if widths.source > 0 {
		line += "  " + t.styles.Dim.Render(truncateFilePath(row.Source, widths.source))
	}
	return strings.TrimRight(line, " ")
}

// singleLine shows embedded line breaks as \n so each row stays on one line.
func singleLine(s string) string {
	return strings.NewReplacer("\r", `\r`, "\n", `\n`).Replace(s)
}

// truncateString truncates a string to maxLen bytes, adding "..." if
// truncated. It never cuts inside a UTF-8 sequence.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:runeBoundary(str, maxLen)]
	}
	return str[:runeBoundary(str, maxLen-3)] + "..."
}

func runeBoundary(s string, n int) int {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return n
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
