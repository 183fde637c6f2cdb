// Package output provides styled terminal output for fwbuild.
//
// [Printer] is the single funnel for user-visible text. Styling is applied
// to prefixes and banners only, so message bodies stay greppable, and it
// degrades to plain text on non-TTY output. Construct with
// [NewPrinterWithWriter] in tests to capture output in a buffer.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes styled messages to a single output writer.
type Printer struct {
	w io.Writer

	banner  lipgloss.Style
	stage   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
}

// NewPrinter creates a Printer writing to stdout.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a Printer writing to w.
func NewPrinterWithWriter(w io.Writer) *Printer {
	return &Printer{
		w:       w,
		banner:  lipgloss.NewStyle().Bold(true),
		stage:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// Banner prints a bold section heading.
func (p *Printer) Banner(title string) {
	fmt.Fprintf(p.w, "\n%s\n", p.banner.Render(title))
}

// Stagef prints a stage-start line.
func (p *Printer) Stagef(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s %s\n", p.stage.Render("▶"), fmt.Sprintf(format, args...))
}

// Successf prints a success line.
func (p *Printer) Successf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s %s\n", p.success.Render("✓"), fmt.Sprintf(format, args...))
}

// Failf prints a failure line.
func (p *Printer) Failf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s %s\n", p.failure.Render("✗"), fmt.Sprintf(format, args...))
}

// Warnf prints a non-fatal warning line.
func (p *Printer) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s %s\n", p.warning.Render("!"), fmt.Sprintf(format, args...))
}

// Infof prints an unstyled informational line.
func (p *Printer) Infof(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "  %s\n", fmt.Sprintf(format, args...))
}
