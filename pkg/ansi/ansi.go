// Package ansi decides whether to emit terminal colors and renders styled
// text through lipgloss.
package ansi

import (
	"fmt"
	"io"
	"os"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/yaklabco/stdkit/pkg/env"
)

// Mode is a user color preference.
type Mode string

// Color modes.
const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// ParseMode converts a flag or config value into a Mode. The empty string
// means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeAlways, ModeNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// Enabled reports whether output to w should be colored, using the process
// environment.
func Enabled(mode Mode, w io.Writer) bool {
	return EnabledEnv(mode, w, env.OS())
}

// EnabledEnv is Enabled with an explicit environment.
//
// In auto mode a non-empty NO_COLOR disables color, a FORCE_COLOR other
// than "0" or "false" enables it, and otherwise color is used only when w
// is a terminal.
func EnabledEnv(mode Mode, w io.Writer, e env.Env) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}

	if e.Get("NO_COLOR") != "" {
		return false
	}
	if force, ok := e.Lookup("FORCE_COLOR"); ok {
		switch strings.ToLower(force) {
		case "0", "false":
			return false
		default:
			return true
		}
	}
	if e.Get("TERM") == "dumb" {
		return false
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Profile returns the color profile to render with. It is termenv.Ascii
// when color is disabled, otherwise the profile implied by COLORTERM and
// TERM, falling back to what termenv detects on w and to basic ANSI when
// w is not a terminal.
func Profile(mode Mode, w io.Writer) termenv.Profile {
	return profile(mode, w, env.OS())
}

func profile(mode Mode, w io.Writer, e env.Env) termenv.Profile {
	if !EnabledEnv(mode, w, e) {
		return termenv.Ascii
	}

	switch strings.ToLower(e.Get("COLORTERM")) {
	case "truecolor", "24bit":
		return termenv.TrueColor
	case "8bit", "256color":
		return termenv.ANSI256
	}

	term := strings.ToLower(e.Get("TERM"))
	switch {
	case strings.Contains(term, "direct"):
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	}

	if IsTerminal(w) {
		if p := termenv.NewOutput(w).ColorProfile(); p != termenv.Ascii {
			return p
		}
	}
	return termenv.ANSI
}

// Strip removes ANSI escape sequences from s.
func Strip(s string) string {
	return xansi.Strip(s)
}
