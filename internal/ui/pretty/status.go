package pretty

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yaklabco/stdkit/pkg/dotenv"
	"github.com/yaklabco/stdkit/pkg/runner"
)

// FormatFileError formats a failed file. Parse errors are shown at their
// line: "path:3: invalid key".
func (s *Styles) FormatFileError(path string, err error) string {
	var perr *dotenv.ParseError
	if errors.As(err, &perr) {
		msg := perr.Unwrap()
		text := "parse error"
		if msg != nil {
			text = msg.Error()
		}
		if perr.Key != "" {
			text += " " + strconv.Quote(perr.Key)
		}
		return fmt.Sprintf("%s%s %s\n",
			s.FilePath.Render(path),
			s.Location.Render(":"+strconv.Itoa(perr.Line)+":"),
			s.Error.Render(text),
		)
	}
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// FormatFileStatus formats one outcome, or returns "" for a file that is
// already formatted.
func (s *Styles) FormatFileStatus(path string, outcome runner.FileOutcome, dryRun bool) string {
	switch {
	case outcome.Error != nil:
		return s.FormatFileError(path, outcome.Error)
	case outcome.Written:
		return s.FilePath.Render(path) + " " + s.Success.Render("formatted") + "\n"
	case outcome.Changed && dryRun:
		return s.FilePath.Render(path) + " " + s.Warning.Render("would be formatted") + "\n"
	case outcome.Changed:
		return s.FilePath.Render(path) + " " + s.Warning.Render("not formatted") + "\n"
	default:
		return ""
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, keys int) string {
	header := s.FilePath.Render(path)
	if keys > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", keys, plural(keys, "variable", "variables")))
	}
	return header
}
