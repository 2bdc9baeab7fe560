// Package artifact resolves and prunes the image artifacts a transform run
// leaves in a subject directory.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/harrison/flowtests/internal/fileutil"
)

// Store abstracts the subject directory so resolution and pruning can run
// against an in-memory fake.
type Store interface {
	// ListComparisonCandidates returns "<index>_warped_*.png" paths in dir, sorted
	ListComparisonCandidates(dir string, index int) ([]string, error)
	// ListAllImages returns every "*.png" path in dir, sorted
	ListAllImages(dir string) ([]string, error)
	// Remove deletes path; a path that no longer exists is not an error
	Remove(path string) error
}

// FSStore is a Store backed by the local filesystem
type FSStore struct{}

// NewFSStore creates a filesystem-backed Store
func NewFSStore() *FSStore {
	return &FSStore{}
}

// ListComparisonCandidates implements Store
func (s *FSStore) ListComparisonCandidates(dir string, index int) ([]string, error) {
	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{
		Pattern:      fmt.Sprintf(`^%d_warped_`, index),
		Extensions:   []string{".png"},
		AllowMissing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list comparison candidates for index %d: %w", index, err)
	}
	return result.Files, nil
}

// ListAllImages implements Store
func (s *FSStore) ListAllImages(dir string) ([]string, error) {
	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{
		Extensions:   []string{".png"},
		AllowMissing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return result.Files, nil
}

// Remove implements Store
func (s *FSStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
