// Package console renders child-process output lines with a padded,
// colorized service-name prefix.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// MinLabelWidth is the floor for the service-name column.
const MinLabelWidth = 5

var (
	stdoutLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	stderrLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	separator   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Printer writes labeled output lines. The label column is sized once, to the
// longest participating service name, so interleaved output stays aligned.
type Printer struct {
	mu    sync.Mutex
	out   io.Writer
	width int
}

func NewPrinter(out io.Writer, names []string) *Printer {
	width := MinLabelWidth
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	return &Printer{out: out, width: width}
}

// Print emits one line prefixed with the padded service name. Stderr lines
// get a distinguishing label color. The lock keeps lines from concurrent
// services whole.
func (p *Printer) Print(service, line string, fromStderr bool) {
	style := stdoutLabel
	if fromStderr {
		style = stderrLabel
	}
	label := fmt.Sprintf("%-*s", p.width, service)

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "%s%s %s\n", style.Render(label), separator.Render(":"), line)
}
