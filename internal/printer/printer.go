// Package printer formats CLI output. Status lines are colored with
// fatih/color; color is disabled when NO_COLOR is set or the output is not a
// terminal.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

// Printer writes regular output to out and errors to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New creates a Printer over the given writers.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// Success prints a green message with a checkmark prefix.
func (p *Printer) Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprintln(p.out, msg)
}

// Warning prints a yellow message to the error stream.
func (p *Printer) Warning(format string, a ...any) {
	yellow.Fprintf(p.errOut, "warning: %s\n", fmt.Sprintf(format, a...))
}

// Println prints a plain line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf prints plain formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Error prints a title in red followed by an optional explanation and
// suggestions to the error stream.
func (p *Printer) Error(title, explanation string, suggestions []string) {
	red.Fprintf(p.errOut, "Error: %s\n", title)
	if explanation != "" {
		fmt.Fprintf(p.errOut, "%s\n", explanation)
	}
	switch len(suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(p.errOut, "\n%s\n", suggestions[0])
	default:
		fmt.Fprintf(p.errOut, "\nEither:\n")
		for i, s := range suggestions {
			fmt.Fprintf(p.errOut, "  %d. %s\n", i+1, s)
		}
	}
}
