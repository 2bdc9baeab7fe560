package display

import (
	"fmt"
	"io"
)

// ProgressIndicator shows "[N/Total] subject" lines for a multi-subject run
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer: w,
		total:  total,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Running transform for %d subject(s):\n", p.total)
}

// Step displays progress for the next subject in cyan
func (p *ProgressIndicator) Step(name string) {
	p.current++
	fmt.Fprintf(p.writer, "\x1b[36m  [%d/%d] %s\x1b[0m\n", p.current, p.total, name)
}

// Complete displays success message with green checkmark
func (p *ProgressIndicator) Complete(failed int) {
	if failed > 0 {
		fmt.Fprintf(p.writer, "\x1b[31m✗\x1b[0m %d of %d subject(s) failed\n", failed, p.total)
		return
	}
	fmt.Fprintf(p.writer, "\x1b[32m✓\x1b[0m Ran %d subject(s)\n", p.total)
}
