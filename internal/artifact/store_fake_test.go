package artifact

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// memStore is an in-memory Store keyed by full path
type memStore struct {
	files   map[string]bool
	removed []string
}

func newMemStore(dir string, names ...string) *memStore {
	s := &memStore{files: make(map[string]bool)}
	for _, name := range names {
		s.files[filepath.Join(dir, name)] = true
	}
	return s
}

func (s *memStore) list(dir string, match func(name string) bool) []string {
	var out []string
	for path := range s.files {
		if filepath.Dir(path) != filepath.Clean(dir) {
			continue
		}
		if match(filepath.Base(path)) {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

func (s *memStore) ListComparisonCandidates(dir string, index int) ([]string, error) {
	prefix := fmt.Sprintf("%d_warped_", index)
	return s.list(dir, func(name string) bool {
		return strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".png")
	}), nil
}

func (s *memStore) ListAllImages(dir string) ([]string, error) {
	return s.list(dir, func(name string) bool {
		return strings.HasSuffix(name, ".png")
	}), nil
}

func (s *memStore) Remove(path string) error {
	if s.files[path] {
		delete(s.files, path)
		s.removed = append(s.removed, path)
	}
	return nil
}

func (s *memStore) names(dir string) []string {
	var out []string
	for _, path := range s.list(dir, func(string) bool { return true }) {
		out = append(out, filepath.Base(path))
	}
	return out
}
