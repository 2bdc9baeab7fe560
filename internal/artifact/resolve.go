package artifact

import (
	"fmt"
	"path/filepath"

	"github.com/harrison/flowtests/internal/models"
)

// OutputImageName returns the fixed output image filename for index
func OutputImageName(index int) string {
	return fmt.Sprintf("%d_out.png", index)
}

// Resolve scans indices 0..MaxIterations-1 in dir and returns one Iteration
// per index that has at least one comparison candidate. Indices without a
// candidate are skipped and scanning continues, so gaps are allowed.
// The lexicographically last candidate wins. The output image is assumed to
// exist whenever a candidate does.
func Resolve(store Store, dir string) (models.ArtifactSet, error) {
	set := models.ArtifactSet{}
	for index := 0; index < models.MaxIterations; index++ {
		candidates, err := store.ListComparisonCandidates(dir, index)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			continue
		}
		set = append(set, models.Iteration{
			Index:           index,
			ComparisonImage: candidates[len(candidates)-1],
			OutputImage:     filepath.Join(dir, OutputImageName(index)),
		})
	}
	return set, nil
}
