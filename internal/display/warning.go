package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}

// WarnMissingResources is shown when a subject's resource directory is absent
// and its transform run is skipped.
func WarnMissingResources(subject, resourceDir string) Warning {
	return Warning{
		Title:   fmt.Sprintf("Skipping %s", subject),
		Message: "Resource directory not found; the existing artifacts stay in the report.",
		Files:   []string{resourceDir},
	}
}

// WarnUnknownSubjects is shown when whitelisted names match no subject
func WarnUnknownSubjects(names []string) Warning {
	return Warning{
		Title:      "Unknown subjects",
		Message:    strings.Join(names, ", "),
		Suggestion: "Check the names against the subject list (bare names, without .app)",
	}
}
