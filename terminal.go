package rspinner

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
)

// IsSmartTerminal returns true if w is a terminal that understands VT escape
// codes and the user did not opt out of colors with NO_COLOR.
func IsSmartTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isSmartTerminal(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), runtime.GOOS, os.LookupEnv)
}

func isSmartTerminal(tty bool, goos string, lookupEnv func(string) (string, bool)) bool {
	if !tty {
		return false
	}

	getenv := func(e string) string {
		v, _ := lookupEnv(e)
		return v
	}

	// https://no-color.org
	if getenv("NO_COLOR") != "" {
		return false
	}

	if getenv("TERM") == "dumb" {
		return false
	}

	// WT_SESSION is set by the modern Windows terminal. Older consoles mangle escape codes.
	if goos == "windows" && getenv("WT_SESSION") == "" {
		return false
	}

	return true
}
