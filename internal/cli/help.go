package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/stdkit/pkg/ansi"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style // command path and usage line
	Heading     lipgloss.Style // "Usage:", "Flags:", ...
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style // -f, --flag
	Placeholder lipgloss.Style // flag value type
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles drawn by r. With color disabled every
// style is plain.
func NewHelpStyles(r *lipgloss.Renderer, colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := r.NewStyle()
		return &HelpStyles{plain, plain, plain, plain, plain, plain, plain}
	}
	return &HelpStyles{
		Command:     r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  r.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        r.NewStyle().Foreground(lipgloss.Color("12")),
		Placeholder: r.NewStyle().Foreground(lipgloss.Color("8")),
		Example:     r.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:         r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help and usage text for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for output written to w.
// An unparsable colorMode is treated as auto.
func NewHelpFormatter(colorMode string, w io.Writer) *HelpFormatter {
	mode, err := ansi.ParseMode(colorMode)
	if err != nil {
		mode = ansi.ModeAuto
	}

	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(ansi.Profile(mode, w))

	return &HelpFormatter{styles: NewHelpStyles(renderer, ansi.Enabled(mode, w))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Run "{{ command (print .CommandPath " [command] --help") }}" for more about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimRight }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":    h.styles.Command.Render,
		"heading":    h.styles.Heading.Render,
		"subcommand": h.styles.Subcommand.Render,
		"example":    h.styles.Example.Render,
		"dim":        h.styles.Dim.Render,
		"flags":      h.flagUsages,
		"join":       strings.Join,
		"rpad":       rpad,
		"trimRight":  trimTrailingWhitespaces,
	}
}

// flagUsages renders pflag's usage block, styling the flag names and value
// placeholders on each line.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

// flagLine styles one "  -f, --flag type   description" line. pflag aligns
// descriptions with at least three spaces, so the first run of three
// separates the two halves; continuation lines have no flag half.
func (h *HelpFormatter) flagLine(line string) string {
	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	body := line[len(indent):]
	if !strings.HasPrefix(body, "-") {
		return line
	}

	names, rest, found := strings.Cut(body, "   ")

	var styled []string
	for _, field := range strings.Fields(names) {
		name, comma := strings.CutSuffix(field, ",")
		if strings.HasPrefix(name, "-") {
			name = h.styles.Flag.Render(name)
		} else {
			name = h.styles.Placeholder.Render(name)
		}
		if comma {
			name += ","
		}
		styled = append(styled, name)
	}

	out := indent + strings.Join(styled, " ")
	if found {
		out += "   " + rest
	}
	return out
}

// ApplyToCommand installs the styled help and usage output on cmd. Cobra
// inherits both functions, so subcommands need not be visited.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
