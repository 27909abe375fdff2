package output

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ResolveColorMode decides whether output is styled. "always" and "never"
// are absolute; anything else follows the terminal, except that a non-empty
// NO_COLOR turns styling off.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch strings.ToLower(strings.TrimSpace(colorMode)) {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTTY
}

// IsTTY reports whether writer is a terminal, including Cygwin and MSYS
// pseudo terminals.
func IsTTY(writer io.Writer) bool {
	f, ok := writer.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
