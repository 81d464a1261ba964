package ansi

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette renders text in a fixed set of styles for one output.
type Palette struct {
	red, green, yellow, blue, gray lipgloss.Style
	bold, dim, italic, underline   lipgloss.Style
}

// NewPalette returns a Palette for w. With color disabled every method
// returns its input unchanged.
func NewPalette(mode Mode, w io.Writer) *Palette {
	return NewPaletteProfile(w, Profile(mode, w))
}

// NewPaletteProfile returns a Palette for w rendering with profile.
func NewPaletteProfile(w io.Writer, profile termenv.Profile) *Palette {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return &Palette{
		red:       r.NewStyle().Foreground(lipgloss.Color("9")),
		green:     r.NewStyle().Foreground(lipgloss.Color("10")),
		yellow:    r.NewStyle().Foreground(lipgloss.Color("11")),
		blue:      r.NewStyle().Foreground(lipgloss.Color("12")),
		gray:      r.NewStyle().Foreground(lipgloss.Color("8")),
		bold:      r.NewStyle().Bold(true),
		dim:       r.NewStyle().Faint(true),
		italic:    r.NewStyle().Italic(true),
		underline: r.NewStyle().Underline(true),
	}
}

func (p *Palette) Red(s string) string       { return p.red.Render(s) }
func (p *Palette) Green(s string) string     { return p.green.Render(s) }
func (p *Palette) Yellow(s string) string    { return p.yellow.Render(s) }
func (p *Palette) Blue(s string) string      { return p.blue.Render(s) }
func (p *Palette) Gray(s string) string      { return p.gray.Render(s) }
func (p *Palette) Bold(s string) string      { return p.bold.Render(s) }
func (p *Palette) Dim(s string) string       { return p.dim.Render(s) }
func (p *Palette) Italic(s string) string    { return p.italic.Render(s) }
func (p *Palette) Underline(s string) string { return p.underline.Render(s) }
