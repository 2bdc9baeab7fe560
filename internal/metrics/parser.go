// Package metrics extracts the numeric rows a transform writes to its log
// and keys them by size.
package metrics

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/harrison/flowtests/internal/models"
)

// numberToken matches one log number: optional minus, digits, optional fraction
var numberToken = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// numberPrefix matches a log number at the start of a token
var numberPrefix = regexp.MustCompile(`^-?\d+(\.\d+)?`)

// Result is what a log yields for one subject
type Result struct {
	Lines []string           // Kept lines in file order, without line terminators
	Table models.MetricTable // Size key -> tuple, keys descending
}

// ParseLine validates one log line and returns its first four numbers.
// A line qualifies when its first three whitespace-separated tokens are
// numbers and the fourth starts with one; anything after the fourth number
// is ignored, so "1 2 3 4ms" and "1.0 2.0 3.0 4.0, done" both qualify.
func ParseLine(line string) (models.MetricTuple, bool) {
	var tuple models.MetricTuple

	fields := strings.Fields(line)
	if len(fields) < len(tuple) {
		return tuple, false
	}

	last := len(tuple) - 1
	for i := range tuple {
		token := fields[i]
		if i == last {
			token = numberPrefix.FindString(token)
		}
		if token == "" || !numberToken.MatchString(token) {
			return tuple, false
		}
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return tuple, false
		}
		tuple[i] = v
	}
	return tuple, true
}

// KeysFor returns the size keys used for a subject with the given number of
// iterations: the first n keys in priority order, sorted descending.
func KeysFor(iterations int) []int {
	n := iterations
	if n > len(models.SizeKeys) {
		n = len(models.SizeKeys)
	}
	if n < 0 {
		n = 0
	}

	keys := make([]int, n)
	copy(keys, models.SizeKeys[:n])
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	return keys
}

// Parse reads log text and pairs kept lines with size keys positionally.
// The table holds min(len(keys), len(kept lines)) entries.
func Parse(r io.Reader, iterations int) (Result, error) {
	var result Result
	var tuples []models.MetricTuple

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			if tuple, ok := ParseLine(line); ok {
				result.Lines = append(result.Lines, line)
				tuples = append(tuples, tuple)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read log: %w", err)
		}
	}

	keys := KeysFor(iterations)
	result.Table = models.MetricTable{}
	for i := 0; i < len(keys) && i < len(tuples); i++ {
		result.Table = append(result.Table, models.MetricEntry{Key: keys[i], Value: tuples[i]})
	}
	return result, nil
}

// ParseFile parses the log at path. A missing log yields an empty result.
func ParseFile(path string, iterations int) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Table: models.MetricTable{}}, nil
		}
		return Result{}, fmt.Errorf("open log %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f, iterations)
}
