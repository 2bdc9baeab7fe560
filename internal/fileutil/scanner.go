package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Pattern is a regex pattern to match filenames (without extension)
	Pattern string
	// Extensions is a list of file extensions to include (e.g., ".png").
	// Matching is case-sensitive, like a shell glob: ".png" does not match "A.PNG".
	Extensions []string
	// AllowMissing makes a nonexistent directory scan as empty instead of failing
	AllowMissing bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the matched paths, each joined onto the scanned directory
	Files []string
}

// ScanDirectory lists the regular files directly inside dir that match opts.
// Hidden files (leading ".") are never listed, matching shell glob behavior.
// Files are returned sorted lexicographically.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	result := &ScanResult{
		Files: make([]string, 0),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if opts.AllowMissing && errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	// Compile pattern if provided
	var patternRegex *regexp.Regexp
	if opts.Pattern != "" {
		patternRegex, err = regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
	}

	// Create extension map for fast lookup
	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[ext] = true
	}

	for _, entry := range entries {
		filename := entry.Name()
		if entry.IsDir() || strings.HasPrefix(filename, ".") {
			continue
		}

		ext := filepath.Ext(filename)
		if len(extMap) > 0 && !extMap[ext] {
			continue
		}

		if patternRegex != nil && !patternRegex.MatchString(strings.TrimSuffix(filename, ext)) {
			continue
		}

		result.Files = append(result.Files, filepath.Join(dir, filename))
	}

	sort.Strings(result.Files)

	return result, nil
}
