package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Printer writes user-visible output, which goes to STDERR by default.
type Printer struct {
	out io.Writer
}

func NewPrinter() *Printer {
	return &Printer{out: os.Stderr}
}

// Redirect sends all further output to writer.
func (p *Printer) Redirect(writer io.Writer) {
	p.out = writer
}

// Writer returns the current output destination.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// IsTerminal reports whether output goes to a terminal.
func (p *Printer) IsTerminal() bool {
	f, ok := p.out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (p *Printer) Print(msg ...any) {
	_, _ = fmt.Fprint(p.out, msg...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Println(msg ...any) {
	_, _ = fmt.Fprintln(p.out, msg...)
}
