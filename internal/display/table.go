package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Table is a simple left-aligned text table
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColorEnabled reports whether w is a terminal that should get ANSI colors
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes the table to w, padding every column to its widest cell.
// Headers are bold when colorOutput is set.
func (t Table) Render(w io.Writer, colorOutput bool) {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	header := t.formatRow(t.Headers, widths)
	if colorOutput {
		header = color.New(color.Bold).Sprint(header)
	}
	fmt.Fprintln(w, header)

	separator := make([]string, len(widths))
	for i, width := range widths {
		separator[i] = strings.Repeat("-", width)
	}
	fmt.Fprintln(w, t.formatRow(separator, widths))

	for _, row := range t.Rows {
		fmt.Fprintln(w, t.formatRow(row, widths))
	}
}

func (t Table) formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
