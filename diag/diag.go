// Package diag prints generator errors to a terminal, coloring the
// "error:" prefix when the output stream is an interactive tty.
package diag

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Reporter writes diagnostics to an output stream, coloring them when
// that stream is a terminal.
type Reporter struct {
	w     io.Writer
	color bool
}

// NewReporter creates a Reporter writing to w. Coloring is enabled only
// when w is an *os.File backed by an interactive terminal.
func NewReporter(w io.Writer) *Reporter {
	color := false

	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}

	return &Reporter{w: w, color: color}
}

// Report writes err to the reporter's stream as "error: <message>",
// coloring the prefix red on an interactive terminal.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}

	if r.color {
		fmt.Fprintf(r.w, "%serror:%s %v\n", ansiRed, ansiReset, err)
	} else {
		fmt.Fprintf(r.w, "error: %v\n", err)
	}
}
