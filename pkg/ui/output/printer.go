package output

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/morph/pkg/ui"
	"github.com/arthur-debert/morph/pkg/ui/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer writes styled lines to a writer
type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	styled   bool
}

// New creates a printer for w. FormatAuto inspects w when it is a file.
func New(w io.Writer, format ui.Format) *Printer {
	if format == ui.FormatAuto {
		format = ui.FormatText
		if f, ok := w.(*os.File); ok {
			format = ui.DetectFormat(f)
		}
	}
	r := lipgloss.NewRenderer(w)
	if format != ui.FormatTerminal {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{w: w, renderer: r, styled: format == ui.FormatTerminal}
}

// Styled reports whether the printer emits styles
func (p *Printer) Styled() bool {
	return p.styled
}

// Style renders text with a named style, or returns it unchanged when plain
func (p *Printer) Style(name, text string) string {
	if !p.styled {
		return text
	}
	return styles.GetStyle(name).Renderer(p.renderer).Render(text)
}

// Printf writes a formatted unstyled line
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// Line writes text with a named style
func (p *Printer) Line(style, text string) {
	_, _ = fmt.Fprintln(p.w, p.Style(style, text))
}

// Header writes a section header
func (p *Printer) Header(text string) {
	p.Line("Header", text)
}

// Success writes a success line
func (p *Printer) Success(text string) {
	p.Line("Success", text)
}

// Error writes a red "Error:" prefix followed by the message
func (p *Printer) Error(err error) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", p.Style("Error", "Error:"), p.Style("ErrorDetail", err.Error()))
}

// Path writes a labelled path
func (p *Printer) Path(label, path string) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", label, p.Style("Path", path))
}
