package artifact

import (
	"github.com/harrison/flowtests/internal/models"
)

// PruneOptions controls Prune
type PruneOptions struct {
	// DryRun reports stale files without removing them
	DryRun bool
}

// Prune removes every image in dir that is not live in set and returns the
// stale paths it removed (or would remove, in dry-run).
//
// An empty set prunes nothing: a subject that resolves to zero iterations may
// be mid-population by a running transform.
func Prune(store Store, dir string, set models.ArtifactSet, opts PruneOptions) ([]string, error) {
	if len(set) == 0 {
		return nil, nil
	}

	present, err := store.ListAllImages(dir)
	if err != nil {
		return nil, err
	}

	live := set.LivePaths()
	var stale []string
	for _, path := range present {
		if live[path] {
			continue
		}
		if !opts.DryRun {
			if err := store.Remove(path); err != nil {
				return stale, err
			}
		}
		stale = append(stale, path)
	}
	return stale, nil
}
