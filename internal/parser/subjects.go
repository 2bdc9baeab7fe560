package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/harrison/flowtests/internal/models"
)

var (
	// subjectLine splits "<app identifier> <resourceA> <resourceB>"; the
	// identifier may itself contain spaces.
	subjectLine = regexp.MustCompile(`^(.+) ([^ ]+) ([^ ]+)$`)
	// appName extracts the bare name from the identifier's last path component
	appName = regexp.MustCompile(`([^/]+)\.app$`)
)

// ParseError reports a subject list line that could not be parsed
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// DuplicateSubjectError reports two lines resolving to the same RawName
type DuplicateSubjectError struct {
	RawName   string
	FirstLine int
	Line      int
}

func (e *DuplicateSubjectError) Error() string {
	return fmt.Sprintf("line %d: subject %q already defined on line %d", e.Line, e.RawName, e.FirstLine)
}

// ParseSubjectLine parses a single subject list line
func ParseSubjectLine(line string) (models.Subject, error) {
	m := subjectLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return models.Subject{}, fmt.Errorf("expected \"<name>.app <resource> <resource>\"")
	}

	name := appName.FindStringSubmatch(m[1])
	if name == nil {
		return models.Subject{}, fmt.Errorf("identifier %q does not end in .app", m[1])
	}

	return models.Subject{
		AppName:   m[1],
		RawName:   name[1],
		ResourceA: m[2],
		ResourceB: m[3],
	}, nil
}

// ParseSubjects reads a subject list, one subject per non-blank line.
// Subjects are returned in file order.
func ParseSubjects(r io.Reader) ([]models.Subject, error) {
	var subjects []models.Subject
	seen := make(map[string]int)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		subject, err := ParseSubjectLine(text)
		if err != nil {
			return nil, &ParseError{Line: lineNum, Text: text, Reason: err.Error()}
		}

		if first, ok := seen[subject.RawName]; ok {
			return nil, &DuplicateSubjectError{RawName: subject.RawName, FirstLine: first, Line: lineNum}
		}
		seen[subject.RawName] = lineNum

		subjects = append(subjects, subject)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read subject list: %w", err)
	}

	return subjects, nil
}

// ParseSubjectFile reads the subject list at path
func ParseSubjectFile(path string) ([]models.Subject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subject list: %w", err)
	}
	defer f.Close()

	subjects, err := ParseSubjects(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return subjects, nil
}

// Filter keeps the subjects whose RawName is in whitelist, preserving order.
// An empty whitelist keeps every subject.
func Filter(subjects []models.Subject, whitelist []string) []models.Subject {
	if len(whitelist) == 0 {
		return subjects
	}

	allowed := make(map[string]bool, len(whitelist))
	for _, name := range whitelist {
		allowed[name] = true
	}

	var kept []models.Subject
	for _, s := range subjects {
		if allowed[s.RawName] {
			kept = append(kept, s)
		}
	}
	return kept
}

// Unknown returns whitelist names that match no subject
func Unknown(subjects []models.Subject, whitelist []string) []string {
	known := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		known[s.RawName] = true
	}

	var unknown []string
	for _, name := range whitelist {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
