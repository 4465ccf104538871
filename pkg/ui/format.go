package ui

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/ui/output"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format is the output format selected with --format.
type Format int

const (
	// FormatAuto resolves to FormatTerminal or FormatText from the output
	FormatAuto Format = iota
	// FormatTerminal is styled with colors
	FormatTerminal
	// FormatText is plain, one line per entry
	FormatText
	// FormatJSON is one JSON document per command
	FormatJSON
)

var formatNames = [...]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

// Accepted spellings besides the canonical names.
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat accepts a canonical name or an alias, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range formatNames {
		if n == name {
			return Format(f), nil
		}
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput,
		"unknown format: %s (expected auto, term, text or json)", s).
		WithDetail("format", s)
}

// DetectFormat picks FormatTerminal only for a color-capable terminal and
// when NO_COLOR is unset.
func DetectFormat(out *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	fd := out.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(out).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// mode maps a resolved format to a render mode.
func (f Format) mode() output.Mode {
	switch f {
	case FormatJSON:
		return output.ModeJSON
	case FormatText:
		return output.ModePlain
	}
	return output.ModeStyled
}
